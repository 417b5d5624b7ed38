package utils

import (
	"strings"
	"testing"
)

func TestGenerateUserID(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		id, err := GenerateUserID()
		if err != nil {
			t.Fatalf("GenerateUserID failed: %v", err)
		}
		if len(id) != UserIDLength {
			t.Fatalf("len(%q) = %d, want %d", id, len(id), UserIDLength)
		}
		for _, r := range id {
			if !strings.ContainsRune(userIDAlphabet, r) {
				t.Fatalf("id %q contains %q, outside the alphabet", id, r)
			}
		}
		seen[id] = true
	}

	// 50 draws from a ~10^9 space colliding would point at a broken source.
	if len(seen) != 50 {
		t.Fatalf("got %d distinct IDs out of 50", len(seen))
	}
}
