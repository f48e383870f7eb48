// File: services/qrcode_service.go
package services

import (
	"os"

	"github.com/skip2/go-qrcode"
)

// GenerateJoinQRCode renders a QR code PNG pointing at the join link for
// a session, so a creator can share a session from their phone.
func GenerateJoinQRCode(sessionID string, size int) ([]byte, error) {
	applicationURL := os.Getenv("APPLICATION_URL")
	if applicationURL == "" {
		applicationURL = "http://localhost:8080" // Default for local testing
	}

	png, err := qrcode.Encode(applicationURL+"/sessions/join/"+sessionID, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}
