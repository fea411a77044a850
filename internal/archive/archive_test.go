package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
)

func TestFilesystemPutGetRoundTrip(t *testing.T) {
	store, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("new filesystem: %v", err)
	}
	ctx := context.Background()

	info, err := store.Put(ctx, "batch/B12-0.archive.json", strings.NewReader(`{"name":"B12-0"}`), PutOptions{ContentType: "application/json"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size == 0 || info.ETag == "" {
		t.Fatalf("incomplete info: %+v", info)
	}

	got, rc, err := store.Get(ctx, "batch/B12-0.archive.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = rc.Close() }()
	body, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(body) != `{"name":"B12-0"}` {
		t.Fatalf("unexpected body %q", body)
	}
	if got.ContentType != "application/json" {
		t.Fatalf("content type lost: %+v", got)
	}
}

func TestFilesystemOverwriteReplacesEntry(t *testing.T) {
	store, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("new filesystem: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Put(ctx, "entry.json", strings.NewReader("v1"), PutOptions{}); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if _, err := store.Put(ctx, "entry.json", strings.NewReader("v2 longer"), PutOptions{}); err != nil {
		t.Fatalf("second put: %v", err)
	}
	_, rc, err := store.Get(ctx, "entry.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = rc.Close() }()
	body, _ := io.ReadAll(rc)
	if string(body) != "v2 longer" {
		t.Fatalf("overwrite not applied: %q", body)
	}
	infos, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected single entry after overwrite, got %d", len(infos))
	}
}

func TestFilesystemRejectsTraversalKeys(t *testing.T) {
	store, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("new filesystem: %v", err)
	}
	for _, key := range []string{"", "  ", "../escape", "/absolute", "a/../../b"} {
		if _, err := store.Put(context.Background(), key, strings.NewReader("x"), PutOptions{}); err == nil {
			t.Fatalf("key %q should be rejected", key)
		}
	}
}

func TestMemoryListFiltersByPrefix(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	for _, key := range []string{"batch/a.json", "batch/b.json", "other/c.json"} {
		if _, err := store.Put(ctx, key, bytes.NewReader([]byte("{}")), PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	infos, err := store.List(ctx, "batch/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(infos))
	}
	if infos[0].Key != "batch/a.json" || infos[1].Key != "batch/b.json" {
		t.Fatalf("unexpected keys: %+v", infos)
	}
}

func TestMemoryDelete(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	if _, err := store.Put(ctx, "k", bytes.NewReader([]byte("x")), PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if ok, err := store.Delete(ctx, "k"); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if ok, err := store.Delete(ctx, "k"); err != nil || ok {
		t.Fatalf("second delete should report missing: %v %v", ok, err)
	}
}

func TestJSONArchiverAppendsSuffix(t *testing.T) {
	store := NewMemory()
	archiver := NewJSONArchiver(store)

	record := map[string]string{"name": "B12-0", "supplier": "Ossila"}
	info, err := archiver.WriteEntry(context.Background(), "B12-0", record)
	if err != nil {
		t.Fatalf("write entry: %v", err)
	}
	if info.Key != "B12-0.archive.json" {
		t.Fatalf("unexpected key %q", info.Key)
	}

	_, rc, err := store.Get(context.Background(), "B12-0.archive.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = rc.Close() }()
	var decoded map[string]string
	if err := json.NewDecoder(rc).Decode(&decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["supplier"] != "Ossila" {
		t.Fatalf("payload lost: %+v", decoded)
	}
}

func TestJSONArchiverRejectsEmptyKey(t *testing.T) {
	archiver := NewJSONArchiver(NewMemory())
	if _, err := archiver.WriteEntry(context.Background(), "  ", struct{}{}); err == nil {
		t.Fatalf("empty key should fail")
	}
}

func TestOpenSelectsDriverFromEnv(t *testing.T) {
	t.Setenv("FOREMATICS_ARCHIVE_DRIVER", "memory")
	store, err := Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Driver() != DriverMemory {
		t.Fatalf("expected memory driver, got %s", store.Driver())
	}

	t.Setenv("FOREMATICS_ARCHIVE_DRIVER", "bogus")
	if _, err := Open(context.Background()); err == nil {
		t.Fatalf("unknown driver should fail")
	}
}

func TestOpenDefaultsToFilesystem(t *testing.T) {
	t.Setenv("FOREMATICS_ARCHIVE_DRIVER", "")
	t.Setenv("FOREMATICS_ARCHIVE_FS_ROOT", t.TempDir())
	store, err := Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Driver() != DriverFilesystem {
		t.Fatalf("expected fs driver, got %s", store.Driver())
	}
}
