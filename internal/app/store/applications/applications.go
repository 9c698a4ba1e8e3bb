// Package applications wraps the Sentinel OAuth client application CRUD
// endpoints.
package applications

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

// List fetches every client application visible to the caller.
func (s *Store) List(ctx context.Context, token string) ([]models.ClientApplication, error) {
	var apps []models.ClientApplication
	err := s.client.Get(ctx, "/applications", token, &apps)
	return apps, err
}

// ListForUser fetches the applications owned by one user.
func (s *Store) ListForUser(ctx context.Context, token, userID string) ([]models.ClientApplication, error) {
	var apps []models.ClientApplication
	err := s.client.Get(ctx, "/users/"+url.PathEscape(userID)+"/applications", token, &apps)
	return apps, err
}

// Get fetches one client application by its client ID.
func (s *Store) Get(ctx context.Context, token, id string) (models.ClientApplication, error) {
	var app models.ClientApplication
	err := s.client.Get(ctx, "/applications/"+url.PathEscape(id), token, &app)
	return app, err
}

// Save creates or updates a client application. The server assigns the ID
// and secret on create and re-checks ownership on update.
func (s *Store) Save(ctx context.Context, token string, app models.ClientApplication) (models.ClientApplication, error) {
	var saved models.ClientApplication
	err := s.client.Post(ctx, "/applications", token, app, &saved)
	return saved, err
}

// Delete removes a client application.
func (s *Store) Delete(ctx context.Context, token, id string) error {
	return s.client.Delete(ctx, "/applications/"+url.PathEscape(id), token, nil)
}
