package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/dmitrijs2005/userkeeper/internal/client/models"
)

type fakeAPI struct {
	pingErr error

	regArgs []string
	regErr  error

	loginEmail, loginPass string
	session               *models.Session
	loginErr              error

	me    *models.User
	meErr error

	users   []models.User
	listErr error

	statusID  string
	statusVal int
	statusErr error

	deletedID string
	deleteErr error

	loggedOut bool
}

func (f *fakeAPI) Ping(context.Context) error { return f.pingErr }
func (f *fakeAPI) Register(_ context.Context, name, email, mobile, password string) (*models.Session, error) {
	f.regArgs = []string{name, email, mobile, password}
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &models.Session{ID: "u1", Name: name, Email: email}, nil
}
func (f *fakeAPI) Login(_ context.Context, email, password string) (*models.Session, error) {
	f.loginEmail, f.loginPass = email, password
	return f.session, f.loginErr
}
func (f *fakeAPI) Me(context.Context) (*models.User, error) { return f.me, f.meErr }
func (f *fakeAPI) List(context.Context) ([]models.User, error) { return f.users, f.listErr }
func (f *fakeAPI) SetStatus(_ context.Context, id string, status int) error {
	f.statusID, f.statusVal = id, status
	return f.statusErr
}
func (f *fakeAPI) Delete(_ context.Context, id string) error {
	f.deletedID = id
	return f.deleteErr
}
func (f *fakeAPI) Logout() { f.loggedOut = true }

// captureOutput replaces printlnFn and returns the printed lines.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

// stubInputs feeds answers to successive text prompts and a fixed password.
func stubInputs(t *testing.T, answers []string, password string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		i++
		return answers[i-1], nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}
