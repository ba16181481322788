// Package auth verifies the HS256 bearer tokens presented to the workout API.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds signer verification parameters.
type Config struct {
	Secret string
	Issuer string
}

var (
	// ErrMissingToken is returned when no bearer token accompanies the request.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken wraps signature, issuer, expiry and payload failures.
	ErrInvalidToken = errors.New("invalid bearer token")
)

const clockSkew = 30 * time.Second

// tokenClaims is the wire shape of the tokens issued to coaches and devices.
type tokenClaims struct {
	TenantID string    `json:"tenant_id"`
	Scopes   scopeList `json:"scopes"`
	jwt.RegisteredClaims
}

// scopeList accepts either a JSON array or an OAuth space-delimited string.
type scopeList []string

func (s *scopeList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return fmt.Errorf("scopes: %w", err)
	}
	*s = strings.Fields(joined)
	return nil
}

// Verifier turns raw bearer tokens into Claims.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier builds a Verifier requiring HS256, the configured issuer and an expiry.
func NewVerifier(cfg Config) *Verifier {
	return &Verifier{
		secret: []byte(cfg.Secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(clockSkew),
		),
	}
}

// Verify validates raw and returns the caller identity it carries.
func (v *Verifier) Verify(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrMissingToken
	}

	var tc tokenClaims
	if _, err := v.parser.ParseWithClaims(raw, &tc, v.signingKey); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if tc.Subject == "" {
		return nil, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	claims := &Claims{
		Subject:  tc.Subject,
		TenantID: tc.TenantID,
		Scopes:   make(map[string]struct{}, len(tc.Scopes)),
	}
	for _, scope := range tc.Scopes {
		if scope != "" {
			claims.Scopes[scope] = struct{}{}
		}
	}
	return claims, nil
}

func (v *Verifier) signingKey(*jwt.Token) (interface{}, error) {
	return v.secret, nil
}
