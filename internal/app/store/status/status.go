// Package status wraps the Sentinel liveness endpoint.
package status

import (
	"context"

	"github.com/Gaucho-Racing/Sentinel/internal/app/store/apiclient"
)

type Store struct {
	client *apiclient.Client
}

func New(client *apiclient.Client) *Store {
	return &Store{client: client}
}

// Ping returns the API's banner message. Callers treat failure as
// non-critical and fall back to an empty banner.
func (s *Store) Ping(ctx context.Context) (string, error) {
	var body struct {
		Message string `json:"message"`
	}
	err := s.client.Get(ctx, "/ping", "", &body)
	return body.Message, err
}
