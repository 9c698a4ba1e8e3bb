// Package auth wraps the Sentinel authentication endpoints: password login,
// registration, Discord code exchange, and refresh token exchange.
package auth

import (
	"context"
	"net/url"

	"github.com/Gaucho-Racing/Sentinel/internal/app/store/apiclient"
	"github.com/Gaucho-Racing/Sentinel/internal/domain/models"
)

type Store struct {
	client *apiclient.Client
}

func New(client *apiclient.Client) *Store {
	return &Store{client: client}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges an email/password pair for a token pair.
func (s *Store) Login(ctx context.Context, email, password string) (models.TokenResponse, error) {
	var tok models.TokenResponse
	err := s.client.Post(ctx, "/auth/login", "", credentials{Email: email, Password: password}, &tok)
	return tok, err
}

// Register creates a password credential for an already-verified account
// and returns a token pair.
func (s *Store) Register(ctx context.Context, email, password string) (models.TokenResponse, error) {
	var tok models.TokenResponse
	err := s.client.Post(ctx, "/auth/register", "", credentials{Email: email, Password: password}, &tok)
	return tok, err
}

// LoginDiscord exchanges a Discord OAuth code for a Sentinel token pair.
// The Discord-side verification is entirely the server's business.
func (s *Store) LoginDiscord(ctx context.Context, code string) (models.TokenResponse, error) {
	var tok models.TokenResponse
	err := s.client.Post(ctx, "/auth/login/discord?code="+url.QueryEscape(code), "", nil, &tok)
	return tok, err
}

// Refresh exchanges a refresh token for a fresh token pair at the token
// endpoint.
func (s *Store) Refresh(ctx context.Context, refreshToken string) (models.TokenResponse, error) {
	var tok models.TokenResponse
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}
	err := s.client.PostForm(ctx, "/oauth/token", form, &tok)
	return tok, err
}
