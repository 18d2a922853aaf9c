package sdk_test

import (
	"archive/zip"
	"bytes"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/minepkg/modio/internals/credentials"
	"github.com/minepkg/modio/pkg/modio"
	"github.com/minepkg/modio/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gameID = 7

// fakeModio serves a small in memory version of the mod.io API for game 7
type fakeModio struct {
	t      *testing.T
	server *httptest.Server

	mu       sync.Mutex
	mods     map[uint32]*modio.Mod
	archives map[string][]byte
	// modfiles are served by GET /mods/{id}/files/{file id}
	modfiles map[uint32]modio.Modfile
	// block is called before a mod is returned by GET /mods/{id}
	block func(r *http.Request, modID uint32)
}

func newFakeModio(t *testing.T) *fakeModio {
	t.Helper()
	f := &fakeModio{
		t:        t,
		mods:     map[uint32]*modio.Mod{},
		archives: map[string][]byte{},
		modfiles: map[uint32]modio.Modfile{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

// zipArchive builds a zip archive containing the given files
func zipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for name, content := range files {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// addMod adds a mod with a live file containing `files`. Pass nil files for a mod without file
func (f *fakeModio) addMod(modID uint32, fileID uint32, version string, files map[string]string) {
	mod := &modio.Mod{ID: modID, GameID: gameID, Name: fmt.Sprintf("Mod %d", modID), Status: modio.ModStatusAccepted}
	if files != nil {
		archive := zipArchive(f.t, files)
		name := fmt.Sprintf("/files/%d.zip", fileID)
		mod.Modfile = modio.Modfile{
			ID:        fileID,
			ModID:     modID,
			DateAdded: int64(fileID),
			Filesize:  int64(len(archive)),
			Filehash:  modio.Filehash{MD5: fmt.Sprintf("%x", md5.Sum(archive))},
			Filename:  "modfile.zip",
			Version:   version,
			Download:  modio.Download{BinaryURL: f.server.URL + name, DateExpires: time.Now().Add(time.Hour).Unix()},
		}
		f.mu.Lock()
		f.archives[name] = archive
		f.mu.Unlock()
	}
	f.mu.Lock()
	f.mods[modID] = mod
	f.mu.Unlock()
}

// expireLink makes the download link in the mod object stale. The modfile endpoint
// responds with `refreshed` instead
func (f *fakeModio) expireLink(modID uint32, refreshed modio.Modfile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	mod := f.mods[modID]
	mod.Modfile.Download = modio.Download{
		BinaryURL:   f.server.URL + "/expired.zip",
		DateExpires: time.Now().Add(-time.Minute).Unix(),
	}
	f.modfiles[refreshed.ID] = refreshed
}

func (f *fakeModio) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(f.t, json.NewEncoder(w).Encode(v))
}

func (f *fakeModio) notFound(w http.ResponseWriter) {
	f.writeJSON(w, http.StatusNotFound, map[string]interface{}{
		"error": map[string]interface{}{"code": 404, "error_ref": 15022, "message": "The requested mod could not be found."},
	})
}

func (f *fakeModio) handle(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	f.mu.Lock()
	archive, isArchive := f.archives[path]
	f.mu.Unlock()
	if isArchive {
		w.Write(archive)
		return
	}

	switch {
	case r.Method == http.MethodPost && path == "/oauth/emailrequest":
		f.writeJSON(w, http.StatusOK, modio.Message{Code: 200, Message: "Check your inbox"})
	case r.Method == http.MethodPost && path == "/oauth/emailexchange":
		f.writeJSON(w, http.StatusOK, modio.AccessToken{Code: 200, AccessToken: "secret", DateExpires: time.Now().Add(time.Hour).Unix()})
	case path == "/me":
		if r.Header.Get("Authorization") != "Bearer secret" {
			f.writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"error": map[string]interface{}{"code": 401, "message": "not logged in"},
			})
			return
		}
		f.writeJSON(w, http.StatusOK, modio.User{ID: 1, Username: "fiws"})
	case path == fmt.Sprintf("/games/%d/mods", gameID):
		f.listMods(w, r)
	case strings.HasPrefix(path, fmt.Sprintf("/games/%d/mods/", gameID)):
		f.handleMod(w, r, strings.TrimPrefix(path, fmt.Sprintf("/games/%d/mods/", gameID)))
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeModio) listMods(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := r.URL.Query().Get("id-in")
	page := modio.Page[modio.Mod]{Data: []modio.Mod{}}
	for id := uint32(1); id <= 100; id++ {
		mod, ok := f.mods[id]
		if !ok || (ids != "" && !containsID(ids, id)) {
			continue
		}
		page.Data = append(page.Data, *mod)
	}
	page.ResultCount = len(page.Data)
	page.ResultLimit = 100
	page.ResultTotal = len(page.Data)
	f.writeJSON(w, http.StatusOK, page)
}

func containsID(list string, id uint32) bool {
	for _, s := range strings.Split(list, ",") {
		if s == fmt.Sprint(id) {
			return true
		}
	}
	return false
}

func (f *fakeModio) handleMod(w http.ResponseWriter, r *http.Request, rest string) {
	var modID uint32
	var sub string
	parts := strings.SplitN(rest, "/", 2)
	fmt.Sscan(parts[0], &modID)
	if len(parts) == 2 {
		sub = parts[1]
	}

	f.mu.Lock()
	mod, ok := f.mods[modID]
	var copied modio.Mod
	if ok {
		copied = *mod
	}
	block := f.block
	var fileID uint32
	var modfile modio.Modfile
	hasFile := false
	if _, err := fmt.Sscanf(sub, "files/%d", &fileID); err == nil {
		modfile, hasFile = f.modfiles[fileID]
	}
	f.mu.Unlock()

	if !ok {
		f.notFound(w)
		return
	}

	switch {
	case sub == "" && r.Method == http.MethodGet:
		if block != nil {
			block(r, modID)
		}
		f.writeJSON(w, http.StatusOK, copied)
	case strings.HasPrefix(sub, "files/") && r.Method == http.MethodGet:
		if !hasFile {
			f.notFound(w)
			return
		}
		f.writeJSON(w, http.StatusOK, modfile)
	case sub == "subscribe" && r.Method == http.MethodPost:
		f.writeJSON(w, http.StatusCreated, copied)
	case sub == "subscribe" && r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	case sub == "media" && r.Method == http.MethodPost:
		f.writeJSON(w, http.StatusCreated, modio.Message{Code: 201, Message: "media added"})
	case sub == "tags" && r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

// newInstance creates an Instance for game 7 that talks to the fake server
func (f *fakeModio) newInstance(root string, mutate ...func(cfg *sdk.Config)) *sdk.Instance {
	f.t.Helper()
	store := credentials.New(root)
	store.NoKeyRingMode = true

	cfg := sdk.Config{
		GameID:      gameID,
		APIKey:      "test-key",
		BaseURL:     f.server.URL,
		RootDir:     root,
		HTTP:        f.server.Client(),
		Credentials: store,
	}
	for _, m := range mutate {
		m(&cfg)
	}

	instance, err := sdk.New(cfg)
	require.NoError(f.t, err)
	f.t.Cleanup(instance.Shutdown)
	return instance
}

// processUntil calls Process until done returns true
func processUntil(t *testing.T, instance *sdk.Instance, done func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !done() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for callbacks")
		}
		instance.Process()
		time.Sleep(time.Millisecond)
	}
}
