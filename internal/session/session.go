package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the bearer token and user identity for the current run.
// It is written at sign-in, cleared at sign-out, and read-only in
// between; the API client receives it at construction instead of
// reading a process-global.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// Anonymous reports whether no user is signed in.
func (s *Session) Anonymous() bool {
	return s == nil || s.Token == ""
}

// Authenticated reports whether the session carries a usable token.
// The token is inspected without signature verification (the server
// owns verification): if it parses as a JWT with an exp claim in the
// past, the session is treated as expired. Opaque tokens pass.
func (s *Session) Authenticated() bool {
	if s.Anonymous() {
		return false
	}

	claims := jwt.MapClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		// Not a JWT; let the server decide.
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}

	return exp.After(time.Now())
}
