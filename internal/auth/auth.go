// Package auth issues and verifies the bearer tokens that scope every query
// to a user. A token is "<userID>.<secret>"; only a bcrypt hash of the
// secret is stored.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/martinsuchenak/migrateplan/internal/model"
)

var ErrInvalidToken = errors.New("invalid token")

// LocalUserID is the identity used when authentication is disabled and the
// request names no user.
const LocalUserID = "local"

// Identity is the authenticated caller.
type Identity struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored by WithIdentity.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok && id.UserID != ""
}

// UserStore is the storage needed to issue and verify tokens.
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
}

// Authenticator verifies bearer tokens against stored users.
type Authenticator struct {
	users UserStore
	cost  int
}

func NewAuthenticator(users UserStore) *Authenticator {
	return &Authenticator{users: users, cost: bcrypt.DefaultCost}
}

// Issue creates a user called name and returns it with its token. The token
// is only available here.
func (a *Authenticator) Issue(ctx context.Context, name string) (*model.User, string, error) {
	secret, err := generateSecret()
	if err != nil {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), a.cost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing token: %w", err)
	}

	u := &model.User{Name: strings.TrimSpace(name), TokenHash: string(hash)}
	if err := a.users.CreateUser(ctx, u); err != nil {
		return nil, "", err
	}
	return u, FormatToken(u.ID, secret), nil
}

// Verify checks token and returns the identity it belongs to.
func (a *Authenticator) Verify(ctx context.Context, token string) (Identity, error) {
	userID, secret, err := ParseToken(token)
	if err != nil {
		return Identity{}, err
	}
	u, err := a.users.GetUser(ctx, userID)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.TokenHash), []byte(secret)) != nil {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: u.ID, Name: u.Name}, nil
}

func FormatToken(userID, secret string) string {
	return userID + "." + secret
}

// ParseToken splits a token at its first dot.
func ParseToken(token string) (userID, secret string, err error) {
	userID, secret, ok := strings.Cut(strings.TrimSpace(token), ".")
	if !ok || userID == "" || secret == "" {
		return "", "", ErrInvalidToken
	}
	return userID, secret, nil
}

func generateSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
