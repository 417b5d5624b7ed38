package storage

import (
	"errors"
	"net/url"
	"strconv"
	"testing"
	"time"
)

func signedParts(t *testing.T, s *Signer, key string, now time.Time) (int64, string) {
	t.Helper()
	raw, _ := s.SignedURL(key, now)
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("SignedURL produced unparseable URL %q: %v", raw, err)
	}
	expires, err := strconv.ParseInt(u.Query().Get("expires"), 10, 64)
	if err != nil {
		t.Fatalf("bad expires in %q: %v", raw, err)
	}
	return expires, u.Query().Get("sig")
}

func TestSignerRoundTrip(t *testing.T) {
	s := NewSigner("secret-key", time.Hour)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	key := "T1/Report_1700000000000.pdf"

	expires, sig := signedParts(t, s, key, now)
	if err := s.Verify(key, expires, sig, now); err != nil {
		t.Fatalf("Verify on fresh URL = %v", err)
	}
	if err := s.Verify(key, expires, sig, now.Add(59*time.Minute)); err != nil {
		t.Fatalf("Verify within TTL = %v", err)
	}
}

func TestSignerExpiry(t *testing.T) {
	s := NewSigner("secret-key", time.Hour)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	expires, sig := signedParts(t, s, "T1/a_1.txt", now)
	err := s.Verify("T1/a_1.txt", expires, sig, now.Add(time.Hour+time.Second))
	if !errors.Is(err, ErrSignatureExpired) {
		t.Fatalf("Verify after TTL = %v, want ErrSignatureExpired", err)
	}
}

func TestSignerRejectsTampering(t *testing.T) {
	s := NewSigner("secret-key", time.Hour)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	key := "T1/a_1.txt"

	expires, sig := signedParts(t, s, key, now)

	if err := s.Verify("T1/b_1.txt", expires, sig, now); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("Verify with different key = %v, want ErrSignatureInvalid", err)
	}
	if err := s.Verify(key, expires+60, sig, now); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("Verify with stretched expiry = %v, want ErrSignatureInvalid", err)
	}
	if err := s.Verify(key, expires, sig+"00", now); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("Verify with altered sig = %v, want ErrSignatureInvalid", err)
	}

	other := NewSigner("other-key", time.Hour)
	if err := other.Verify(key, expires, sig, now); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("Verify under different secret = %v, want ErrSignatureInvalid", err)
	}
}

func TestSignedURLShape(t *testing.T) {
	s := NewSigner("secret-key", time.Hour)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	raw, expiresAt := s.SignedURL("T1/weekly report_1.pdf", now)
	if want := now.Add(time.Hour); !expiresAt.Equal(want) {
		t.Errorf("expiresAt = %v, want %v", expiresAt, want)
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("unparseable URL %q: %v", raw, err)
	}
	// The space in the title must be escaped, but the key separator kept.
	if u.Path != "/files/T1/weekly report_1.pdf" {
		t.Errorf("decoded path = %q", u.Path)
	}
}
