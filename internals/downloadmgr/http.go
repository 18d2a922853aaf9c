package downloadmgr

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var defaultClient = http.Client{
	Transport: &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   20 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	},
}

// HTTPItem is a URL, target pair with optional properties that will be downloaded
// using http(s)
type HTTPItem struct {
	Client *http.Client
	URL    string
	Target string
	// Size is the expected size in bytes. Not checked if 0
	Size int64
	// MD5 is the expected hex encoded md5 sum. Not checked if empty
	MD5 string
}

// ErrStatus is returned when the server did not respond with 200
type ErrStatus struct {
	URL        string
	StatusCode int
}

func (e *ErrStatus) Error() string {
	return fmt.Sprintf("invalid status code %d from %s", e.StatusCode, e.URL)
}

// ErrInvalidChecksum is returned when the downloaded file's md5 sum does not match the expected one
type ErrInvalidChecksum struct {
	FileName    string
	ExpectedMD5 string
	ActualMD5   string
}

func (e *ErrInvalidChecksum) Error() string {
	return fmt.Sprintf(
		"File corrupted: %s md5 is invalid.\n\texpected to be \"%s\"\n\tbut actually is \"%s\"",
		e.FileName,
		e.ExpectedMD5,
		e.ActualMD5,
	)
}

// ErrInvalidSize is returned when the downloaded file does not have the expected size
var ErrInvalidSize = errors.New("downloaded file has an unexpected size")

// Download downloads the item to the defined target using http.
// The file is written to `Target + ".part"` first and only moved into place
// after all checks passed
func (i *HTTPItem) Download(ctx context.Context) error {
	err := os.MkdirAll(filepath.Dir(i.Target), os.ModePerm)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", i.URL, nil)
	if err != nil {
		return err
	}

	client := i.Client
	if client == nil {
		client = &defaultClient
	}

	fileRes, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error while fetching %s: %w", i.URL, err)
	}
	defer fileRes.Body.Close()

	if fileRes.StatusCode != http.StatusOK {
		return &ErrStatus{URL: i.URL, StatusCode: fileRes.StatusCode}
	}

	partFile := i.Target + ".part"
	dest, err := os.Create(partFile)
	if err != nil {
		return err
	}

	hasher := md5.New()
	written, err := io.Copy(io.MultiWriter(dest, hasher), fileRes.Body)
	if err == nil {
		err = dest.Sync()
	}
	if closeErr := dest.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(partFile)
		return err
	}

	if i.Size != 0 && written != i.Size {
		os.Remove(partFile)
		return fmt.Errorf("%w: %s is %d bytes, expected %d", ErrInvalidSize, i.Target, written, i.Size)
	}

	// check md5 if there is one set
	actualMD5 := fmt.Sprintf("%x", hasher.Sum(nil))
	if i.MD5 != "" && !strings.EqualFold(actualMD5, i.MD5) {
		os.Remove(partFile)
		return &ErrInvalidChecksum{i.Target, i.MD5, actualMD5}
	}

	return os.Rename(partFile, i.Target)
}

// NewHTTPItem creates a Item to be queued that will download the file using HTTP(S)
func NewHTTPItem(URL string, Target string) *HTTPItem {
	if URL == "" {
		panic("Download URL can not be empty")
	}
	if Target == "" {
		panic("Target can not be empty")
	}
	return &HTTPItem{Client: &defaultClient, URL: URL, Target: Target}
}
