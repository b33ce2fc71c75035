package domain

import "time"

// TokenPair is the {access, refresh} tuple produced atomically by one
// issuance call. A pair is created at login and at every successful refresh;
// the previous pair is simply abandoned, nothing is persisted server-side.
type TokenPair struct {
	AccessToken  string
	RefreshToken string

	// TTLs the tokens were minted with, so the transport layer can give
	// each cookie a lifetime matching the token it carries.
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}
