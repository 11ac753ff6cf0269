// Package session implements the stateless session cookie scheme.
// All session state lives in a signed token held by the client; the server
// keeps no session table.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidToken is returned for malformed or tampered tokens.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("session token expired")
)

// Claims is the payload carried inside a session token.
// Only the user ID is trusted; profile data is always re-read from storage.
type Claims struct {
	UserID    string `json:"uid"`
	ExpiresAt int64  `json:"exp"`
}

// Codec issues and verifies signed session tokens.
// Token format: base64url(JSON claims) + "." + hex(HMAC-SHA256).
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a Codec with the given signing secret and token lifetime.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue creates a signed token for the given user ID.
func (c *Codec) Issue(userID string) (string, error) {
	claims := Claims{
		UserID:    userID,
		ExpiresAt: time.Now().Add(c.ttl).Unix(),
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("encode claims: %w", err)
	}

	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + c.sign(encoded), nil
}

// Decode verifies a token's signature and expiry and returns its claims.
// Any malformed or tampered token yields ErrInvalidToken; callers treat
// both failure modes as "no session".
func (c *Codec) Decode(token string) (*Claims, error) {
	encoded, signature, ok := strings.Cut(token, ".")
	if !ok {
		return nil, ErrInvalidToken
	}

	expected := c.sign(encoded)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, ErrInvalidToken
	}

	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	if time.Now().Unix() >= claims.ExpiresAt {
		return nil, ErrTokenExpired
	}

	return &claims, nil
}

// sign computes the hex HMAC-SHA256 of the encoded payload.
func (c *Codec) sign(encoded string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(encoded))
	return hex.EncodeToString(mac.Sum(nil))
}
