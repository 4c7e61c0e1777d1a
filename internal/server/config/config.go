// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import "time"

// DefaultSecretKey is used for signing session tokens when no secret is
// configured. Anyone who can read it can mint valid tokens.
const DefaultSecretKey = "your_secret_key"

// Config holds runtime settings for the userkeeper server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP API.
//   - EndpointAddrGRPC: bind address for the gRPC health endpoint (empty disables it).
//   - DatabaseDSN: store connection string; the scheme selects the backend
//     (mongodb://, postgres://, memory://).
//   - DatabaseName: MongoDB database name (ignored by other backends).
//   - SecretKey: HMAC secret for signing JWTs (HS256).
//   - TokenValidityDuration: session token lifetime.
//   - BcryptCost: password hashing cost factor.
//   - LogLevel: debug, info, warn or error.
//   - S3*: object storage used by the directory export; an empty bucket disables it.
type Config struct {
	EndpointAddrHTTP      string        `env:"HTTP_ADDR"`
	EndpointAddrGRPC      string        `env:"GRPC_ADDR"`
	DatabaseDSN           string        `env:"MONGO_URI"`
	DatabaseName          string        `env:"DB_NAME"`
	SecretKey             string        `env:"JWT_SECRET"`
	TokenValidityDuration time.Duration `env:"TOKEN_TTL"`
	BcryptCost            int           `env:"BCRYPT_COST"`
	LogLevel              string        `env:"LOG_LEVEL"`
	S3RootUser            string        `env:"S3_ROOT_USER"`
	S3RootPassword        string        `env:"S3_ROOT_PASSWORD"`
	S3Bucket              string        `env:"S3_BUCKET"`
	S3Region              string        `env:"S3_REGION"`
	S3BaseEndpoint        string        `env:"S3_BASE_ENDPOINT"`
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":5000"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = "mongodb://localhost:27017"
	c.DatabaseName = "userkeeper"
	c.SecretKey = DefaultSecretKey
	c.TokenValidityDuration = 24 * time.Hour
	c.BcryptCost = 10
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// UsesDefaultSecret reports whether tokens are signed with DefaultSecretKey.
func (c *Config) UsesDefaultSecret() bool {
	return c.SecretKey == "" || c.SecretKey == DefaultSecretKey
}

// ExportEnabled reports whether object storage is configured.
func (c *Config) ExportEnabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment (optionally seeded from a
// dotenv file) and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	if cfg.SecretKey == "" {
		cfg.SecretKey = DefaultSecretKey
	}
	return cfg
}
