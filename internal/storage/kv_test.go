package storage

import (
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

// exercise runs the KV contract against any backend.
func exercise(t *testing.T, kv KV) {
	t.Helper()

	if _, ok, err := kv.Get("missing"); err != nil || ok {
		t.Errorf("Get(missing) = ok=%v err=%v, want absent", ok, err)
	}

	if err := kv.Set("reminders", `[{"id":"a"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := kv.Get("reminders")
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	if value != `[{"id":"a"}]` {
		t.Errorf("value = %q", value)
	}

	// Overwrite replaces the blob.
	if err := kv.Set("reminders", `[]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _, _ = kv.Get("reminders")
	if value != `[]` {
		t.Errorf("value after overwrite = %q", value)
	}

	// Keys are independent.
	kv.Set("settings", `{"darkMode":true}`)
	value, _, _ = kv.Get("reminders")
	if value != `[]` {
		t.Errorf("second key clobbered the first: %q", value)
	}
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	kv, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer kv.Close()

	exercise(t, kv)
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	kv, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := kv.Set("reminders", `[{"id":"a"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	kv, err = NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer kv.Close()

	value, ok, err := kv.Get("reminders")
	if err != nil || !ok {
		t.Fatalf("get after reopen: ok=%v err=%v", ok, err)
	}
	if value != `[{"id":"a"}]` {
		t.Errorf("value = %q", value)
	}
}

func TestRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	kv := NewRedis(mr.Addr(), "", 0)
	defer kv.Close()

	exercise(t, kv)
}

func TestOpen(t *testing.T) {
	kv, err := Open(Options{Backend: BackendSQLite, Path: filepath.Join(t.TempDir(), "o.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	kv.Close()

	if _, err := Open(Options{Backend: "postgres"}); err == nil {
		t.Error("unknown backend did not error")
	}
}
