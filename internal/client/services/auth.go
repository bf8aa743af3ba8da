// Package services contains application services for the GophDrive shell.
// This file defines the authentication service: sign-in with a provider
// issued session token, restoring a cached session, and sign-out.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/client/client"
	"github.com/dmitrijs2005/gophdrive/internal/client/models"
	"github.com/dmitrijs2005/gophdrive/internal/client/repositories/session"
	"github.com/dmitrijs2005/gophdrive/internal/dbx"
)

var ErrEmptyToken = errors.New("session token is empty")

// AuthService defines authentication operations for the shell.
//
// Contract:
//   - Login: verify a token against the server and cache it locally.
//   - Restore: reuse the cached token. When the server is unreachable the
//     cached user id is returned together with client.ErrUnavailable.
//   - Logout: forget the cached token.
//   - Ping: check server liveness.
type AuthService interface {
	Login(ctx context.Context, token string) (string, error)
	Restore(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	now    func() time.Time
}

// NewAuthService constructs an AuthService bound to the given API client and
// session database.
func NewAuthService(c client.Client, db *sql.DB) AuthService {
	return &authService{client: c, db: db, now: time.Now}
}

func (a *authService) Login(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if rest, ok := strings.CutPrefix(token, "Bearer"); ok {
		token = strings.TrimSpace(rest)
	}
	if token == "" {
		return "", ErrEmptyToken
	}

	a.client.SetToken(token)
	userID, err := a.client.Me(ctx)
	if err != nil {
		a.client.SetToken("")
		return "", fmt.Errorf("login error: %w", err)
	}

	s := models.Session{Token: token, UserID: userID, SignedIn: a.now()}
	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return session.NewSQLiteRepository(tx).Save(ctx, s)
	})
	if err != nil {
		return "", fmt.Errorf("session saving error: %w", err)
	}
	return userID, nil
}

func (a *authService) Restore(ctx context.Context) (string, error) {
	repo := session.NewSQLiteRepository(a.db)
	s, err := repo.Load(ctx)
	if err != nil {
		return "", err
	}
	if s.Empty() {
		return "", client.ErrNoSession
	}

	a.client.SetToken(s.Token)
	userID, err := a.client.Me(ctx)
	switch {
	case err == nil:
		return userID, nil
	case errors.Is(err, client.ErrUnavailable):
		return s.UserID, err
	case errors.Is(err, client.ErrUnauthorized):
		a.client.SetToken("")
		if cerr := repo.Clear(ctx); cerr != nil {
			return "", cerr
		}
		return "", err
	default:
		return "", err
	}
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetToken("")
	return session.NewSQLiteRepository(a.db).Clear(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
