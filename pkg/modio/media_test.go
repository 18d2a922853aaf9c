package modio_test

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/minepkg/modio/pkg/modio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readForm parses an url encoded body. r.ParseForm ignores bodies of DELETE requests
func readForm(t *testing.T, r *http.Request) url.Values {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	assert.NoError(t, err)
	form, err := url.ParseQuery(string(body))
	assert.NoError(t, err)
	return form
}

func TestAddModYoutubeLinks(t *testing.T) {
	links := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/oHg5SJYRHA0",
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/games/7/mods/12/media", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, links, readForm(t, r)["youtube[]"])
		writeJSON(w, http.StatusCreated, `{"code": 201, "message": "You have successfully added new media to the specified mod."}`)
	})

	msg, err := client.AddModYoutubeLinks(context.Background(), 12, links)
	require.NoError(t, err)
	assert.Equal(t, 201, msg.Code)
}

func TestDeleteModYoutubeLinks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, []string{"https://youtu.be/oHg5SJYRHA0"}, readForm(t, r)["youtube[]"])
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.DeleteModYoutubeLinks(context.Background(), 12, []string{"https://youtu.be/oHg5SJYRHA0"})
	require.NoError(t, err)
}

func TestAddModSketchfabLinks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"https://sketchfab.com/models/ef40b2d300334d009984c8865b2db1c8"}, readForm(t, r)["sketchfab[]"])
		writeJSON(w, http.StatusCreated, `{"code": 201, "message": "ok"}`)
	})

	_, err := client.AddModSketchfabLinks(context.Background(), 1, []string{"https://sketchfab.com/models/ef40b2d300334d009984c8865b2db1c8"})
	require.NoError(t, err)
}

func TestMediaLinksAreValidated(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made for invalid links")
	})

	_, err := client.AddModYoutubeLinks(context.Background(), 1, nil)
	assert.ErrorIs(t, err, modio.ErrNoLinks)

	_, err = client.AddModYoutubeLinks(context.Background(), 1, []string{"dQw4w9WgXcQ"})
	assert.ErrorIs(t, err, modio.ErrInvalidLink)

	err = client.DeleteModSketchfabLinks(context.Background(), 1, []string{"ftp://example.com/model"})
	assert.ErrorIs(t, err, modio.ErrInvalidLink)
}

func TestEditModLogo(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("logo")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)

		assert.Equal(t, "logo.png", header.Filename)
		assert.Equal(t, "PNG", string(content))
		writeJSON(w, http.StatusCreated, `{"code": 201, "message": "ok"}`)
	})

	msg, err := client.EditModLogo(context.Background(), 3, "logo.png", strings.NewReader("PNG"))
	require.NoError(t, err)
	assert.Equal(t, 201, msg.Code)
}
