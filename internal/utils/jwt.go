package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenMalformed is returned when the presented string is not a JWT at
// all. ErrTokenNotValid covers every other verification failure: expiry,
// bad signature, wrong algorithm. The two are kept apart for logging and
// tests only; the transport layer maps both to the same response so the
// distinction is never visible to clients.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenNotValid  = errors.New("token expired or signature invalid")
)

// AccessToken represents a signed JWT session token along with its expiry.
// The Token field contains the serialized JWT returned to the client; Exp
// stores the UTC expiration time. Tokens are stateless: the server keeps
// no record of them on issuance, only of the ones revoked by logout.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// NewAccessToken builds and signs an HS256 JWT for a user. The claims are
// subject (sub, the user ID), expiration (exp) and issued at (iat). The
// signing secret is process-wide configuration loaded once at startup.
func NewAccessToken(secret string, userID uint64, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken validates signature and expiry and returns the embedded
// user ID. Failures collapse to ErrTokenMalformed or ErrTokenNotValid.
func ParseAccessToken(secret, raw string) (uint64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return 0, ErrTokenMalformed
		}
		return 0, ErrTokenNotValid
	}
	if !tok.Valid {
		return 0, ErrTokenNotValid
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrTokenNotValid
	}
	// JWT numeric values decode as float64; some encoders emit numeric
	// strings instead.
	switch sub := claims["sub"].(type) {
	case float64:
		return uint64(sub), nil
	case string:
		if id, err := strconv.ParseUint(sub, 10, 64); err == nil {
			return id, nil
		}
	}
	return 0, ErrTokenNotValid
}

// HashToken returns the SHA-256 hash of a token string as a hex digest.
// The revocation set stores only digests, so a leaked database dump does
// not hand out usable bearer tokens.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
