package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrSignatureExpired = errors.New("signed url expired")
	ErrSignatureInvalid = errors.New("invalid signature")
)

// Signer issues and verifies capability-bearing download URLs. The signature
// covers the key and the expiry, so a holder can fetch exactly one object
// until the TTL runs out, without any further authentication.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl}
}

// SignedURL returns the relative download URL for key, valid for the
// configured TTL, plus its expiry time.
func (s *Signer) SignedURL(key string, now time.Time) (string, time.Time) {
	expires := now.Add(s.ttl)
	sig := s.signature(key, expires.Unix())
	u := fmt.Sprintf("/files/%s?expires=%d&sig=%s",
		escapeKeyPath(key), expires.Unix(), sig)
	return u, expires
}

// Verify checks an incoming download request. Expiry is checked before the
// signature so an expired-but-valid link reports the friendlier error.
func (s *Signer) Verify(key string, expires int64, sig string, now time.Time) error {
	if now.Unix() > expires {
		return ErrSignatureExpired
	}
	want := s.signature(key, expires)
	if !hmac.Equal([]byte(want), []byte(sig)) {
		return ErrSignatureInvalid
	}
	return nil
}

func (s *Signer) signature(key string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(key))
	mac.Write([]byte("\n"))
	mac.Write([]byte(strconv.FormatInt(expires, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

// escapeKeyPath escapes each key segment but keeps the separators, since the
// key's team/file layout is part of the URL path.
func escapeKeyPath(key string) string {
	parts := strings.Split(key, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
