package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestKVFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "state")
	s := NewKVFileStore(dir)

	if _, ok, err := s.Get(ctx, "currentPage"); ok || err != nil {
		t.Fatalf("Get before Set = ok %v, err %v", ok, err)
	}

	if err := s.Set(ctx, "currentPage", []byte("5")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "currentPage", []byte("6")); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	got, ok, err := s.Get(ctx, "currentPage")
	if err != nil || !ok {
		t.Fatalf("Get = ok %v, err %v", ok, err)
	}
	if string(got) != "6" {
		t.Errorf("Get = %s, want 6", got)
	}

	if filepath.Dir(s.Path("currentPage")) != dir {
		t.Errorf("Path = %s, want file in %s", s.Path("currentPage"), dir)
	}
	if _, err := os.Stat(s.Path("currentPage") + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestKVFileStore_EscapesKeys(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewKVFileStore(dir)

	if err := s.Set(ctx, "../escape", []byte("1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if filepath.Dir(s.Path("../escape")) != dir {
		t.Errorf("key escaped the state dir: %s", s.Path("../escape"))
	}
	if err := s.Set(ctx, "", []byte("1")); err == nil {
		t.Error("Set with empty key succeeded")
	}
}

func TestKVFileStore_ReadError(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewKVFileStore(dir)

	// A directory where the file should be makes ReadFile fail with something
	// other than not-exist.
	if err := os.MkdirAll(s.Path("dragList"), 0o700); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Get(ctx, "dragList"); err == nil {
		t.Error("Get on a directory returned nil error")
	}
}
