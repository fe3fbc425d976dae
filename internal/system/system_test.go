package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFindLatestDocument(t *testing.T) {
	dir := t.TempDir()
	files := []string{"old.sif", "new.XML", "newest.txt", "mid.sif"}
	for i, name := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("<canvas/>"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		os.Chtimes(path, modTime, modTime)
	}
	// The newest document file is mid.sif; newest.txt is not a document.
	latest, err := FindLatestDocument(dir)
	if err != nil {
		t.Fatalf("FindLatestDocument failed: %v", err)
	}
	if filepath.Base(latest) != "mid.sif" {
		t.Errorf("Expected mid.sif, got %s", latest)
	}
}

func TestFindLatestDocument_Empty(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)

	_, err := FindLatestDocument(dir)
	if err == nil {
		t.Fatal("Expected an error for a directory without documents")
	}
	if !strings.Contains(err.Error(), ".sif") {
		t.Errorf("Expected the error to list extensions, got: %v", err)
	}
}

func TestBufferPool(t *testing.T) {
	buf := GetBuffer()
	buf.WriteString("payload")
	PutBuffer(buf)

	again := GetBuffer()
	if again.Len() != 0 {
		t.Errorf("Expected an empty buffer, got %d bytes", again.Len())
	}
	PutBuffer(again)
	PutBuffer(nil)
}
