package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
)

// testBackend runs the Backend contract on b.
func testBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := b.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v, want absent", ok, err)
	}
	if err := b.Set(ctx, KeyPartners, []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := b.Set(ctx, KeyPartners, []byte(`[]`)); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}
	got, ok, err := b.Get(ctx, KeyPartners)
	if err != nil || !ok || string(got) != "[]" {
		t.Fatalf("Get() = %q, %v, %v, want [] after overwrite", got, ok, err)
	}
	if err := b.Delete(ctx, KeyPartners); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := b.Delete(ctx, KeyPartners); err != nil {
		t.Fatalf("Delete() of an absent key failed: %v", err)
	}
	if _, ok, _ := b.Get(ctx, KeyPartners); ok {
		t.Errorf("Get() after Delete() found the key")
	}
}

func TestMemBackend(t *testing.T) { testBackend(t, NewMemBackend()) }

func TestDirBackend(t *testing.T) {
	testBackend(t, NewDirBackend(filepath.Join(t.TempDir(), "shop")))
}

func TestSQLBackend(t *testing.T) {
	b, err := OpenSQL(sqlite.Open(filepath.Join(t.TempDir(), "shop.db")))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	defer b.Close()
	testBackend(t, b)
}

func TestOpenBackend(t *testing.T) {
	dir := t.TempDir()
	testCases := []struct {
		location string
		want     string
	}{
		{"mem:", "*store.MemBackend"},
		{"dir:" + dir, "*store.DirBackend"},
		{dir, "*store.DirBackend"},
	}
	for _, tc := range testCases {
		b, err := OpenBackend(tc.location)
		if err != nil {
			t.Errorf("OpenBackend(%q) failed: %v", tc.location, err)
			continue
		}
		if got := fmt.Sprintf("%T", b); got != tc.want {
			t.Errorf("OpenBackend(%q) = %s, want %s", tc.location, got, tc.want)
		}
	}
	if _, err := OpenBackend(""); err == nil {
		t.Errorf("OpenBackend(\"\") succeeded")
	}
}
