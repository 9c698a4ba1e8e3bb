// Package users wraps the Sentinel user endpoints: the directory, profile
// reads and writes, credential resets, analytics feeds, and the Drive and
// GitHub access grants.
package users

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

// Me resolves the profile behind the bearer token via GET /users/@me.
func (s *Store) Me(ctx context.Context, token string) (models.User, error) {
	var u models.User
	err := s.client.Get(ctx, "/users/@me", token, &u)
	return u, err
}

// List fetches the full user directory.
func (s *Store) List(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	err := s.client.Get(ctx, "/users", token, &users)
	return users, err
}

// Get fetches one user by ID.
func (s *Store) Get(ctx context.Context, token, id string) (models.User, error) {
	var u models.User
	err := s.client.Get(ctx, "/users/"+url.PathEscape(id), token, &u)
	return u, err
}

// Save creates or updates a user profile via POST /users/{id}. The server
// owns all validation and ignores fields the caller may not change.
func (s *Store) Save(ctx context.Context, token string, u models.User) (models.User, error) {
	var saved models.User
	err := s.client.Post(ctx, "/users/"+url.PathEscape(u.ID), token, u, &saved)
	return saved, err
}

// ResetPassword deletes the password credential for a user so they can
// register a new one.
func (s *Store) ResetPassword(ctx context.Context, token, id string) error {
	return s.client.Delete(ctx, "/users/"+url.PathEscape(id)+"/auth", token, nil)
}

// AllLogins fetches the platform-wide login feed. Admin-gated server-side.
func (s *Store) AllLogins(ctx context.Context, token string) ([]models.UserLogin, error) {
	var logins []models.UserLogin
	err := s.client.Get(ctx, "/logins", token, &logins)
	return logins, err
}

// Logins fetches the login history feed for a user.
func (s *Store) Logins(ctx context.Context, token, id string) ([]models.UserLogin, error) {
	var logins []models.UserLogin
	err := s.client.Get(ctx, "/users/"+url.PathEscape(id)+"/logins", token, &logins)
	return logins, err
}

// ActivityStats fetches per-day action counters for a user.
func (s *Store) ActivityStats(ctx context.Context, token, id string) ([]models.ActivityCount, error) {
	var stats []models.ActivityCount
	err := s.client.Get(ctx, "/users/"+url.PathEscape(id)+"/activity-stats", token, &stats)
	return stats, err
}

// DriveStatus reports whether the user has been granted shared Drive access.
func (s *Store) DriveStatus(ctx context.Context, token, id string) (bool, error) {
	return s.grantStatus(ctx, token, id, "drive")
}

// AddToDrive grants shared Drive access.
func (s *Store) AddToDrive(ctx context.Context, token, id string) error {
	return s.client.Post(ctx, "/users/"+url.PathEscape(id)+"/drive", token, nil, nil)
}

// RemoveFromDrive revokes shared Drive access.
func (s *Store) RemoveFromDrive(ctx context.Context, token, id string) error {
	return s.client.Delete(ctx, "/users/"+url.PathEscape(id)+"/drive", token, nil)
}

// GithubStatus reports whether the user has been invited to the GitHub org.
func (s *Store) GithubStatus(ctx context.Context, token, id string) (bool, error) {
	return s.grantStatus(ctx, token, id, "github")
}

// AddToGithub invites the user to the GitHub org.
func (s *Store) AddToGithub(ctx context.Context, token, id string) error {
	return s.client.Post(ctx, "/users/"+url.PathEscape(id)+"/github", token, nil, nil)
}

func (s *Store) grantStatus(ctx context.Context, token, id, grant string) (bool, error) {
	err := s.client.Get(ctx, "/users/"+url.PathEscape(id)+"/"+grant, token, nil)
	if err == nil {
		return true, nil
	}
	if apiclient.IsStatus(err, 404) {
		return false, nil
	}
	return false, err
}
