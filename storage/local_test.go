package storage

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"teamboard/utils"
)

func TestDiskStoreRoundTrip(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	key := "T1/Report_1700000000000.pdf"
	if err := store.Put(key, strings.NewReader("hello")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	blob, err := store.Open(key)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	data, err := io.ReadAll(blob)
	blob.Close()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("read back %q, want %q", data, "hello")
	}

	objects, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(objects) != 1 || objects[0].Key != key {
		t.Fatalf("List = %+v, want one object with key %s", objects, key)
	}
	if objects[0].Size != int64(len("hello")) {
		t.Errorf("object size = %d, want %d", objects[0].Size, len("hello"))
	}

	if err := store.Delete(key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Open(key); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("Open after delete = %v, want ErrNotFound", err)
	}
}

func TestDiskStoreRejectsTraversal(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	for _, key := range []string{"", "/etc/passwd", "../outside", "T1/../../outside"} {
		if err := store.Put(key, strings.NewReader("x")); err == nil {
			t.Errorf("Put(%q) succeeded, want error", key)
		}
	}
}

func TestDiskStoreDeleteMissingIsNoop(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}
	if err := store.Delete("T1/never-existed.txt"); err != nil {
		t.Fatalf("Delete on missing key = %v, want nil", err)
	}
}

func TestBuildKey(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	if got := BuildKey("T1", "Report", "notes.pdf", now); got != "T1/Report_1700000000000.pdf" {
		t.Errorf("BuildKey = %q", got)
	}
	// No extension falls back to bin.
	if got := BuildKey("T1", "Report", "README", now); got != "T1/Report_1700000000000.bin" {
		t.Errorf("BuildKey without extension = %q", got)
	}
	// Titles cannot escape the team prefix.
	if got := BuildKey("T1", "../../sneaky", "a.txt", now); strings.Contains(got, "..") {
		t.Errorf("BuildKey leaked traversal: %q", got)
	}
	if got := BuildKey("T1", "a/b", "a.txt", now); got != "T1/a-b_1700000000000.txt" {
		t.Errorf("BuildKey with slash in title = %q", got)
	}
}
