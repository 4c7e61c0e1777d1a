package server

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/config"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recLogger struct {
	mu    sync.Mutex
	warns []string
	errs  []string
}

func (r *recLogger) Debug(context.Context, string, ...any) {}
func (r *recLogger) Info(context.Context, string, ...any) {}
func (r *recLogger) Warn(_ context.Context, m string, _ ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warns = append(r.warns, m)
}
func (r *recLogger) Error(_ context.Context, m string, _ ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, m)
}
func (r *recLogger) With(...any) logging.Logger { return r }

type failingManager struct {
	*repomanager.InMemoryRepositoryManager
	closed bool
}

func (f *failingManager) RunMigrations(context.Context) error { return errors.New("no route to host") }
func (f *failingManager) Close(context.Context) error {
	f.closed = true
	return nil
}

func withManager(t *testing.T, m repomanager.RepositoryManager, err error) {
	t.Helper()
	orig := newRepositoryManager
	newRepositoryManager = func(context.Context, string, string) (repomanager.RepositoryManager, error) {
		return m, err
	}
	t.Cleanup(func() { newRepositoryManager = orig })
}

func TestNewApp_WarnsOnDefaultSecret(t *testing.T) {
	log := &recLogger{}
	cfg := &config.Config{DatabaseDSN: "memory://", SecretKey: config.DefaultSecretKey}

	app, err := newApp(context.Background(), cfg, log)
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Len(t, log.warns, 1)

	log = &recLogger{}
	cfg.SecretKey = "configured"
	_, err = newApp(context.Background(), cfg, log)
	require.NoError(t, err)
	assert.Empty(t, log.warns)
}

func TestNewApp_BootstrapFailureIsLenient(t *testing.T) {
	fm := &failingManager{InMemoryRepositoryManager: repomanager.NewInMemoryRepositoryManager()}
	withManager(t, fm, nil)

	log := &recLogger{}
	app, err := newApp(context.Background(), &config.Config{SecretKey: "s"}, log)
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, []string{"store bootstrap failed, continuing"}, log.errs)
}

func TestNewApp_ManagerError(t *testing.T) {
	withManager(t, nil, errors.New("bad dsn"))

	_, err := newApp(context.Background(), &config.Config{SecretKey: "s"}, &recLogger{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")
}

func TestRun_StopsOnCancelAndClosesStore(t *testing.T) {
	fm := &failingManager{InMemoryRepositoryManager: repomanager.NewInMemoryRepositoryManager()}
	withManager(t, fm, nil)

	cfg := &config.Config{EndpointAddrHTTP: "127.0.0.1:0", EndpointAddrGRPC: "127.0.0.1:0", SecretKey: "s"}
	app, err := newApp(context.Background(), cfg, &recLogger{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.True(t, fm.closed)
}

func TestRun_ReturnsServerError(t *testing.T) {
	withManager(t, repomanager.NewInMemoryRepositoryManager(), nil)

	cfg := &config.Config{EndpointAddrHTTP: "127.0.0.1:99999", SecretKey: "s"}
	app, err := newApp(context.Background(), cfg, &recLogger{})
	require.NoError(t, err)

	select {
	case err := <-runAsync(app):
		assert.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not fail")
	}
}

func runAsync(app *App) <-chan error {
	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	return done
}
