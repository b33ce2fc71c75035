package httpx

import (
	"net/http"
	"time"
)

// Cookie names for the two credential purposes.
const (
	AccessCookie  = "doorman_access"
	RefreshCookie = "doorman_refresh"
)

// Credentials is a transport-level view of an issued credential pair.
type Credentials struct {
	Access  string
	Refresh string

	// Lifetimes the tokens were minted with. The carrier gives each cookie
	// exactly this lifetime: a cookie must never discard a still-valid
	// token early, and there is no point in it outliving the token either.
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// CredentialCarrier decides how each credential purpose travels on the wire,
// for both reading (inbound request) and writing (outbound response). Exactly
// one implementation is selected at wiring time; reader and writer are the
// same value, so the scheme cannot diverge between issuance and verification.
type CredentialCarrier interface {
	ReadAccess(r *http.Request) string
	ReadRefresh(r *http.Request) string
	WritePair(w http.ResponseWriter, c Credentials)
	Clear(w http.ResponseWriter)
}

// CookieCarrier carries both credentials in httpOnly cookies.
type CookieCarrier struct {
	// Secure marks the cookies Secure. Tie this to the deployment
	// environment; only dev setups should run without it.
	Secure bool
}

var _ CredentialCarrier = CookieCarrier{}

func (c CookieCarrier) ReadAccess(r *http.Request) string {
	return readCookie(r, AccessCookie)
}

func (c CookieCarrier) ReadRefresh(r *http.Request) string {
	return readCookie(r, RefreshCookie)
}

func (c CookieCarrier) WritePair(w http.ResponseWriter, creds Credentials) {
	http.SetCookie(w, c.cookie(AccessCookie, creds.Access, int(creds.AccessTTL.Seconds())))
	http.SetCookie(w, c.cookie(RefreshCookie, creds.Refresh, int(creds.RefreshTTL.Seconds())))
}

// Clear expires both carriers immediately. Used by logout.
func (c CookieCarrier) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie(AccessCookie, "", -1))
	http.SetCookie(w, c.cookie(RefreshCookie, "", -1))
}

func (c CookieCarrier) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func readCookie(r *http.Request, name string) string {
	ck, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}
