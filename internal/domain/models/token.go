package models

// TokenResponse is the body returned by the login, register, and token
// exchange endpoints. RefreshToken may be empty; not every grant issues one.
type TokenResponse struct {
	IDToken      string `json:"id_token,omitempty"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope"`
}

// AuthorizeValidation is the response to validating an incoming OAuth
// authorization request. Prompt is either "consent" or "none".
type AuthorizeValidation struct {
	ClientID    string `json:"client_id"`
	RedirectURI string `json:"redirect_uri"`
	Scope       string `json:"scope"`
	Prompt      string `json:"prompt"`
}

// AuthorizationCode is issued by the authorize endpoint when the user
// approves a request; the code is handed back to the client application.
type AuthorizationCode struct {
	Code      string `json:"code"`
	ClientID  string `json:"client_id"`
	UserID    string `json:"user_id"`
	Scope     string `json:"scope"`
	ExpiresAt string `json:"expires_at"`
}
