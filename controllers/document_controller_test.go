package controller

import (
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"teamboard/storage"
)

// downloadApp wires DownloadDocument onto the /files/* route the way
// SetupAPIRoutes does. The handler never touches the database, so the
// controller runs without one here.
func downloadApp(t *testing.T) (*fiber.App, storage.Store, *storage.Signer) {
	t.Helper()

	store, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}
	signer := storage.NewSigner("secret-key", time.Hour)
	dc := NewDocumentController(nil, store, signer, log.New(io.Discard, "", 0))

	app := fiber.New()
	app.Get("/files/*", dc.DownloadDocument)
	return app, store, signer
}

// Keys built from titles with spaces come out of SignedURL percent-escaped;
// replaying that exact URL through the route must still verify and serve.
func TestDownloadDocumentEscapedKey(t *testing.T) {
	app, store, signer := downloadApp(t)

	key := storage.BuildKey("T1", "weekly report", "notes.pdf", time.UnixMilli(1700000000000))
	if err := store.Put(key, strings.NewReader("report body")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	signed, _ := signer.SignedURL(key, time.Now())
	if !strings.Contains(signed, "weekly%20report") {
		t.Fatalf("SignedURL %q did not escape the space", signed)
	}

	resp, err := app.Test(httptest.NewRequest("GET", signed, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(body) != "report body" {
		t.Errorf("body = %q, want %q", body, "report body")
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "weekly report_1700000000000.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestDownloadDocumentRejections(t *testing.T) {
	app, store, signer := downloadApp(t)

	key := storage.BuildKey("T1", "Report", "notes.pdf", time.UnixMilli(1700000000000))
	if err := store.Put(key, strings.NewReader("x")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	signed, _ := signer.SignedURL(key, time.Now())

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"tampered signature", signed + "00", fiber.StatusForbidden},
		{"missing signature", "/files/" + key, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tt.target, nil))
		if err != nil {
			t.Fatalf("%s: request failed: %v", tt.name, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.name, resp.StatusCode, tt.want)
		}
	}
}

func TestDownloadDocumentExpired(t *testing.T) {
	app, store, signer := downloadApp(t)

	key := storage.BuildKey("T1", "Report", "notes.pdf", time.UnixMilli(1700000000000))
	if err := store.Put(key, strings.NewReader("x")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// Sign far enough in the past that the TTL has run out by now.
	signed, _ := signer.SignedURL(key, time.Now().Add(-2*time.Hour))
	resp, err := app.Test(httptest.NewRequest("GET", signed, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusGone {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusGone)
	}
}

func TestDownloadDocumentMissingBlob(t *testing.T) {
	app, _, signer := downloadApp(t)

	key := "T1/never-uploaded_1.pdf"
	signed, _ := signer.SignedURL(key, time.Now())
	resp, err := app.Test(httptest.NewRequest("GET", signed, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusNotFound)
	}
}
