package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/martinsuchenak/migrateplan/internal/model"
)

var errNotFound = errors.New("user not found")

type memUsers struct {
	users map[string]model.User
}

func (m *memUsers) CreateUser(ctx context.Context, u *model.User) error {
	u.ID = "user-" + u.Name
	m.users[u.ID] = *u
	return nil
}

func (m *memUsers) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, errNotFound
	}
	return &u, nil
}

func newTestAuthenticator() *Authenticator {
	a := NewAuthenticator(&memUsers{users: map[string]model.User{}})
	a.cost = bcrypt.MinCost
	return a
}

func TestIssueAndVerify(t *testing.T) {
	a := newTestAuthenticator()
	ctx := context.Background()

	u, token, err := a.Issue(ctx, " alice ")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if u.Name != "alice" {
		t.Errorf("Name = %q, want trimmed", u.Name)
	}
	if !strings.HasPrefix(token, u.ID+".") {
		t.Errorf("token %q does not start with user id", token)
	}
	if strings.Contains(u.TokenHash, strings.TrimPrefix(token, u.ID+".")) {
		t.Error("stored hash contains the plain secret")
	}

	id, err := a.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if id.UserID != u.ID || id.Name != "alice" {
		t.Errorf("Verify() = %+v", id)
	}
}

func TestVerifyRejects(t *testing.T) {
	a := newTestAuthenticator()
	ctx := context.Background()
	u, token, err := a.Issue(ctx, "bob")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no dot", "abc"},
		{"empty secret", u.ID + "."},
		{"wrong secret", u.ID + ".nope"},
		{"unknown user", "ghost." + strings.TrimPrefix(token, u.ID+".")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := a.Verify(ctx, tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify(%q) error = %v, want ErrInvalidToken", tt.token, err)
			}
		})
	}
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := FromContext(ctx); ok {
		t.Error("empty context must not carry an identity")
	}
	ctx = WithIdentity(ctx, Identity{UserID: "u1", Name: "alice"})
	id, ok := FromContext(ctx)
	if !ok || id.UserID != "u1" {
		t.Errorf("FromContext() = %+v, %v", id, ok)
	}
	if _, ok := FromContext(WithIdentity(context.Background(), Identity{})); ok {
		t.Error("identity without user id must not count")
	}
}
