// Package oauth wraps the Sentinel authorization endpoints used by the
// consent flow: the scope catalog and the two-phase authorize call.
//
// The console performs none of the security-relevant validation itself.
// Client ID and redirect URI matching, scope validation, and code issuance
// all happen server-side; this package forwards the incoming query string
// opaquely and relays the server's answers.
package oauth

import (
	"context"
	"strings"

	"github.com/Gaucho-Racing/Sentinel/internal/app/store/apiclient"
	"github.com/Gaucho-Racing/Sentinel/internal/domain/models"
)

type Store struct {
	client *apiclient.Client
}

func New(client *apiclient.Client) *Store {
	return &Store{client: client}
}

// Scopes fetches the catalog of valid OAuth scopes with their
// human-readable descriptions.
func (s *Store) Scopes(ctx context.Context, token string) (map[string]string, error) {
	var catalog map[string]string
	err := s.client.Get(ctx, "/oauth/scopes", token, &catalog)
	return catalog, err
}

// Validate forwards the raw authorization query string to the server for
// validation. The response resolves the client ID and tells the console
// whether consent must be prompted ("consent") or may be skipped ("none").
func (s *Store) Validate(ctx context.Context, token, rawQuery string) (models.AuthorizeValidation, error) {
	var v models.AuthorizeValidation
	err := s.client.Get(ctx, "/oauth/authorize?"+rawQuery, token, &v)
	return v, err
}

// Authorize executes the authorization request the user approved and
// returns the issued code.
func (s *Store) Authorize(ctx context.Context, token, rawQuery string) (models.AuthorizationCode, error) {
	var code models.AuthorizationCode
	err := s.client.Post(ctx, "/oauth/authorize?"+rawQuery, token, nil, &code)
	return code, err
}

// SplitScope splits a space-delimited scope parameter for display. No
// further syntax validation happens client-side.
func SplitScope(scope string) []string {
	fields := strings.Fields(scope)
	if len(fields) == 0 {
		return []string{}
	}
	return fields
}
