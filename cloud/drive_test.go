package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/etnz/goldbook"
	"github.com/etnz/goldbook/store"
)

// fakeDrive serves the few Drive endpoints used by Drive.
type fakeDrive struct {
	t       *testing.T
	content []byte // nil means no file
	creates int
	updates int
	auth    string
	plain   bool   // answer JSON without a Content-Type
	newID   string // id returned on create
}

func (f *fakeDrive) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.auth = r.Header.Get("Authorization")
	if !f.plain {
		w.Header().Set("Content-Type", "application/json")
	}
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/drive/v3/files":
		if q := r.URL.Query().Get("q"); q != "name = 'PyramidsGold_Backup.json' and trashed = false" {
			f.t.Errorf("list query = %q", q)
		}
		list := map[string]any{"files": []any{}}
		if f.content != nil {
			list["files"] = []any{map[string]string{"id": "abc", "name": BackupFileName}}
		}
		json.NewEncoder(w).Encode(list)
	case r.Method == http.MethodPost && r.URL.Path == "/upload/drive/v3/files":
		if got := r.URL.Query().Get("uploadType"); got != "multipart" {
			f.t.Errorf("create uploadType = %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if meta := r.FormValue("metadata"); !strings.Contains(meta, BackupFileName) {
			f.t.Errorf("create metadata = %q", meta)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.content, _ = io.ReadAll(file)
		f.creates++
		json.NewEncoder(w).Encode(map[string]string{"id": f.newID})
	case r.Method == http.MethodPatch && r.URL.Path == "/upload/drive/v3/files/abc":
		f.content, _ = io.ReadAll(r.Body)
		f.updates++
		json.NewEncoder(w).Encode(map[string]string{"id": "abc"})
	case r.Method == http.MethodGet && r.URL.Path == "/drive/v3/files/abc" && r.URL.Query().Get("alt") == "media":
		w.Write(f.content)
	default:
		http.NotFound(w, r)
	}
}

func newFake(t *testing.T) (*fakeDrive, *Drive) {
	f := &fakeDrive{t: t, newID: "abc"}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	d, err := Open(context.Background(), Config{AccessToken: "tok", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return f, d
}

func TestUpload_CreateThenUpdate(t *testing.T) {
	ctx := context.Background()
	f, d := newFake(t)

	id, created, err := d.Upload(ctx, []byte(`{"v":1}`))
	if err != nil || !created || id != "abc" {
		t.Fatalf("first Upload() = %q, %v, %v, want a created file", id, created, err)
	}
	id, created, err = d.Upload(ctx, []byte(`{"v":2}`))
	if err != nil || created || id != "abc" {
		t.Fatalf("second Upload() = %q, %v, %v, want an update", id, created, err)
	}
	if f.creates != 1 || f.updates != 1 || string(f.content) != `{"v":2}` {
		t.Errorf("drive saw %d creates, %d updates, content %s", f.creates, f.updates, f.content)
	}
	if f.auth != "Bearer tok" {
		t.Errorf("Authorization = %q, want Bearer tok", f.auth)
	}
}

func TestUpload_UnlabelledJSON(t *testing.T) {
	ctx := context.Background()
	f, d := newFake(t)
	f.plain = true

	if id, created, err := d.Upload(ctx, []byte(`{"v":1}`)); err != nil || !created || id != "abc" {
		t.Fatalf("first Upload() = %q, %v, %v, want a created file", id, created, err)
	}
	if id, created, err := d.Upload(ctx, []byte(`{"v":2}`)); err != nil || created || id != "abc" {
		t.Fatalf("second Upload() = %q, %v, %v, want an update", id, created, err)
	}
	if f.creates != 1 || f.updates != 1 {
		t.Errorf("drive saw %d creates, %d updates, want 1 and 1", f.creates, f.updates)
	}
	data, err := d.Download(ctx)
	if err != nil || string(data) != `{"v":2}` {
		t.Errorf("Download() = %s, %v", data, err)
	}
}

func TestUpload_MissingID(t *testing.T) {
	f, d := newFake(t)
	f.newID = ""
	if id, created, err := d.Upload(context.Background(), []byte(`{}`)); err == nil {
		t.Errorf("Upload() = %q, %v, <nil>, want an error", id, created)
	}
}

func TestDownload_NoBackup(t *testing.T) {
	_, d := newFake(t)
	if _, err := d.Download(context.Background()); !errors.Is(err, goldbook.ErrNoBackup) {
		t.Errorf("Download() error = %v, want ErrNoBackup", err)
	}
}

func TestBackupRestore(t *testing.T) {
	ctx := context.Background()
	_, d := newFake(t)

	src := store.New(store.NewMemBackend())
	if _, err := src.Partners().Add(ctx, goldbook.Partner{ID: "p1", Name: "Mahmoud", Capital: goldbook.A(1000)}); err != nil {
		t.Fatal(err)
	}
	if _, err := Backup(ctx, d, src); err != nil {
		t.Fatalf("Backup() failed: %v", err)
	}
	settings, _ := src.Settings().Load(ctx)
	if settings.Drive.LastBackup == "" {
		t.Errorf("Backup() did not record the backup time")
	}

	dst := store.New(store.NewMemBackend())
	if _, err := Restore(ctx, d, dst); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	partners, _ := dst.Partners().List(ctx)
	if len(partners) != 1 || partners[0].ID != "p1" {
		t.Errorf("restored partners = %+v", partners)
	}
}

func TestTokenSource(t *testing.T) {
	if _, err := (Config{}).TokenSource(context.Background()); !errors.Is(err, ErrNotSignedIn) {
		t.Errorf("TokenSource() without token error = %v, want ErrNotSignedIn", err)
	}
	u := Config{ClientID: "id", RedirectURL: "http://localhost:8085"}.AuthURL("state")
	for _, want := range []string{"accounts.google.com", "client_id=id", "access_type=offline", "drive.file"} {
		if !strings.Contains(u, want) {
			t.Errorf("AuthURL() = %q, missing %q", u, want)
		}
	}
}
