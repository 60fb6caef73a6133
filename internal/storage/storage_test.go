package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func testKVs(t *testing.T) map[string]KV {
	t.Helper()
	fileKV, err := NewFileKV(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return map[string]KV{
		"memory": NewMemoryKV(),
		"file":   fileKV,
	}
}

func TestKV_SetGetDelete(t *testing.T) {
	for name, kv := range testKVs(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok := kv.Get("missing"); ok {
				t.Error("missing key should not be present")
			}

			if err := kv.Set("k", "v1"); err != nil {
				t.Fatal(err)
			}
			if v, ok := kv.Get("k"); !ok || v != "v1" {
				t.Errorf("Get = %q, %v; want v1, true", v, ok)
			}

			if err := kv.Set("k", "v2"); err != nil {
				t.Fatal(err)
			}
			if v, _ := kv.Get("k"); v != "v2" {
				t.Errorf("overwrite: Get = %q, want v2", v)
			}

			if err := kv.Delete("k"); err != nil {
				t.Fatal(err)
			}
			if _, ok := kv.Get("k"); ok {
				t.Error("deleted key should be gone")
			}

			if err := kv.Delete("k"); err != nil {
				t.Errorf("deleting a missing key should be a no-op, got %v", err)
			}
		})
	}
}

func TestFileKV_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := kv.Set("listedItems", `[{"id":"a1"}]`); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewFileKV(dir)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := reopened.Get("listedItems"); !ok || v != `[{"id":"a1"}]` {
		t.Errorf("reopened Get = %q, %v", v, ok)
	}
}

func TestFileKV_SanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := kv.Set("../escape", "v"); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Dir(filepath.Join(dir, e.Name())) != dir {
			t.Errorf("entry escaped data dir: %s", e.Name())
		}
	}
	if v, ok := kv.Get("../escape"); !ok || v != "v" {
		t.Errorf("sanitized key should still round-trip, got %q, %v", v, ok)
	}
}
