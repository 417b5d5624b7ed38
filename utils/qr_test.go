package utils

import (
	"errors"
	"testing"
)

func TestEncodeTeamQR(t *testing.T) {
	if got := EncodeTeamQR("T123"); got != "team:T123" {
		t.Fatalf("EncodeTeamQR = %q, want %q", got, "team:T123")
	}
}

func TestDecodeTeamQR(t *testing.T) {
	tests := []struct {
		payload string
		want    string
		wantErr bool
	}{
		{"team:T123", "T123", false},
		{"team:abc-def", "abc-def", false},
		{"T123", "", true},      // missing prefix must be rejected
		{"team:", "", true},     // prefix with no ID
		{"", "", true},          // empty payload
		{"Team:T123", "", true}, // prefix is case-sensitive
	}

	for _, tt := range tests {
		got, err := DecodeTeamQR(tt.payload)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidQRPayload) {
				t.Errorf("DecodeTeamQR(%q) error = %v, want ErrInvalidQRPayload", tt.payload, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("DecodeTeamQR(%q) unexpected error: %v", tt.payload, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DecodeTeamQR(%q) = %q, want %q", tt.payload, got, tt.want)
		}
	}
}

func TestTeamQRRoundTrip(t *testing.T) {
	teamID := "550e8400-e29b-41d4-a716-446655440000"
	decoded, err := DecodeTeamQR(EncodeTeamQR(teamID))
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if decoded != teamID {
		t.Fatalf("round trip = %q, want %q", decoded, teamID)
	}
}

func TestTeamQRPNG(t *testing.T) {
	png, err := TeamQRPNG("T123", 256)
	if err != nil {
		t.Fatalf("TeamQRPNG failed: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("TeamQRPNG returned empty image")
	}
	// PNG magic bytes
	if png[0] != 0x89 || string(png[1:4]) != "PNG" {
		t.Fatal("TeamQRPNG did not return a PNG")
	}
}
