package downloadmgr

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const content = "PK fake zip content"

func md5Hex(s string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(s)))
}

func newFileServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/file.zip" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, content)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestHTTPItemDownload(t *testing.T) {
	server := newFileServer(t)
	target := filepath.Join(t.TempDir(), "nested", "file.zip")

	item := NewHTTPItem(server.URL+"/file.zip", target)
	item.Client = server.Client()
	item.MD5 = md5Hex(content)
	item.Size = int64(len(content))

	require.NoError(t, item.Download(context.Background()))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	_, err = os.Stat(target + ".part")
	assert.True(t, os.IsNotExist(err), "part file should be gone")
}

func TestHTTPItemChecksumMismatch(t *testing.T) {
	server := newFileServer(t)
	target := filepath.Join(t.TempDir(), "file.zip")

	item := NewHTTPItem(server.URL+"/file.zip", target)
	item.Client = server.Client()
	item.MD5 = md5Hex("something else")

	err := item.Download(context.Background())
	var checksumErr *ErrInvalidChecksum
	require.True(t, errors.As(err, &checksumErr))
	assert.Equal(t, md5Hex(content), checksumErr.ActualMD5)

	_, err = os.Stat(target)
	assert.True(t, os.IsNotExist(err), "corrupted file should not be kept")
}

func TestHTTPItemSizeMismatch(t *testing.T) {
	server := newFileServer(t)
	item := NewHTTPItem(server.URL+"/file.zip", filepath.Join(t.TempDir(), "file.zip"))
	item.Client = server.Client()
	item.Size = 1

	assert.ErrorIs(t, item.Download(context.Background()), ErrInvalidSize)
}

func TestHTTPItemStatus(t *testing.T) {
	server := newFileServer(t)
	item := NewHTTPItem(server.URL+"/missing.zip", filepath.Join(t.TempDir(), "file.zip"))
	item.Client = server.Client()

	err := item.Download(context.Background())
	var statusErr *ErrStatus
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestDownloadManager(t *testing.T) {
	server := newFileServer(t)
	dir := t.TempDir()

	mgr := New()
	mgr.Concurrency = 2
	progress := []int{}
	mgr.OnProgress = func(p int) { progress = append(progress, p) }

	for i := 0; i < 4; i++ {
		item := NewHTTPItem(server.URL+"/file.zip", filepath.Join(dir, fmt.Sprintf("%d.zip", i)))
		item.Client = server.Client()
		mgr.Add(item)
	}
	require.Equal(t, 4, mgr.Len())

	require.NoError(t, mgr.Start(context.Background()))
	assert.Equal(t, []int{25, 50, 75, 100}, progress)
	assert.Equal(t, 0, mgr.Len())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestDownloadManagerReturnsFirstError(t *testing.T) {
	server := newFileServer(t)
	mgr := New()

	item := NewHTTPItem(server.URL+"/missing.zip", filepath.Join(t.TempDir(), "file.zip"))
	item.Client = server.Client()
	mgr.Add(item)

	assert.Error(t, mgr.Start(context.Background()))
}
