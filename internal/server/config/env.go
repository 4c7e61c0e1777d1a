package config

import (
	"os"

	"github.com/dmitrijs2005/userkeeper/internal/flagx"
	"github.com/ilyakaznacheev/cleanenv"
)

const defaultEnvFile = ".env"

// parseEnv overlays values from environment variables named in the env tags
// of Config. A dotenv file given via -envfile (or ./.env when present) is
// loaded into the environment first. Unset variables leave fields untouched.
func parseEnv(config *Config) {
	envFile := flagx.EnvFileFlags()
	if envFile == "" {
		if _, err := os.Stat(defaultEnvFile); err == nil {
			envFile = defaultEnvFile
		}
	}

	var err error
	if envFile != "" {
		err = cleanenv.ReadConfig(envFile, config)
	} else {
		err = cleanenv.ReadEnv(config)
	}
	if err != nil {
		panic(err)
	}
}
