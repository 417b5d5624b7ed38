package utils

import (
	"errors"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// TeamQRPrefix is the fixed marker in front of the team ID inside a QR
// payload. There is no checksum or expiry; the join flow validates the
// decoded ID against the teams table instead.
const TeamQRPrefix = "team:"

var ErrInvalidQRPayload = errors.New("invalid team QR payload")

// EncodeTeamQR builds the QR payload for a team.
func EncodeTeamQR(teamID string) string {
	return TeamQRPrefix + teamID
}

// DecodeTeamQR recovers the team ID from a scanned payload. Strings without
// the prefix are rejected rather than passed through as a team ID.
func DecodeTeamQR(payload string) (string, error) {
	if !strings.HasPrefix(payload, TeamQRPrefix) {
		return "", ErrInvalidQRPayload
	}
	teamID := strings.TrimPrefix(payload, TeamQRPrefix)
	if teamID == "" {
		return "", ErrInvalidQRPayload
	}
	return teamID, nil
}

// TeamQRPNG renders the team payload as a size x size PNG.
func TeamQRPNG(teamID string, size int) ([]byte, error) {
	return qrcode.Encode(EncodeTeamQR(teamID), qrcode.Medium, size)
}
