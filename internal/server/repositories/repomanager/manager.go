package repomanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/users"
)

// RepositoryManager owns a store connection and vends repositories bound to it.
type RepositoryManager interface {
	// RunMigrations prepares the store schema: SQL migrations or document
	// indexes, depending on the backend.
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Close(ctx context.Context) error
}

// New picks a RepositoryManager from the DSN scheme:
// mongodb:// and mongodb+srv:// use MongoDB (dbName selects the database),
// postgres:// and postgresql:// use PostgreSQL, memory:// keeps data in process.
func New(ctx context.Context, dsn, dbName string) (RepositoryManager, error) {
	scheme, _, ok := strings.Cut(dsn, "://")
	if !ok {
		return nil, fmt.Errorf("unsupported database dsn %q", dsn)
	}

	switch strings.ToLower(scheme) {
	case "mongodb", "mongodb+srv":
		return NewMongoRepositoryManager(ctx, dsn, dbName)
	case "postgres", "postgresql":
		return NewPostgresRepositoryManager(dsn)
	case "memory":
		return NewInMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", scheme)
	}
}
