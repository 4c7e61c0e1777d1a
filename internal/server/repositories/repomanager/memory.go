package repomanager

import (
	"context"

	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves a process-local store. Data does not
// survive a restart.
type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewInMemoryRepository()}
}

func (m *InMemoryRepositoryManager) Users() users.Repository { return m.users }
func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }
func (m *InMemoryRepositoryManager) Close(context.Context) error { return nil }
