package modio_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/minepkg/modio/pkg/modio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetModNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"error": {"code": 404, "error_ref": 15022, "message": "The requested mod could not be found."}}`)
	})

	_, err := client.GetMod(context.Background(), 404)
	assert.ErrorIs(t, err, modio.ErrNotFound)
}

func TestEditMod(t *testing.T) {
	visible := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/games/7/mods/2", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "New Name", r.PostForm.Get("name"))
		assert.Equal(t, "0", r.PostForm.Get("visible"))
		assert.NotContains(t, r.PostForm, "summary")
		writeJSON(w, http.StatusOK, `{"id": 2, "name": "New Name", "visible": 0}`)
	})

	mod, err := client.EditMod(context.Background(), 2, &modio.EditModRequest{Name: "New Name", Visible: &visible})
	require.NoError(t, err)
	assert.Equal(t, "New Name", mod.Name)
}

func TestEditModWithoutChanges(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made")
	})

	_, err := client.EditMod(context.Background(), 2, &modio.EditModRequest{})
	assert.ErrorIs(t, err, modio.ErrEmptyEdit)

	_, err = client.EditMod(context.Background(), 2, nil)
	assert.ErrorIs(t, err, modio.ErrEmptyEdit)
}

func TestDeleteMod(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/games/7/mods/2", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteMod(context.Background(), 2))
}

func TestGetModfiles(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/games/7/mods/2/files":
			writeJSON(w, http.StatusOK, `{"data": [{"id": 10, "version": "1.0"}, {"id": 11, "version": "1.1"}], "result_count": 2}`)
		case "/games/7/mods/2/files/11":
			writeJSON(w, http.StatusOK, `{"id": 11, "mod_id": 2, "version": "1.1", "filehash": {"md5": "abc"}}`)
		default:
			http.NotFound(w, r)
		}
	})

	files, err := client.GetModfiles(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, files.Data, 2)

	file, err := client.GetModfile(context.Background(), 2, 11)
	require.NoError(t, err)
	assert.Equal(t, "abc", file.Filehash.MD5)
}

func TestModTags(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/7/mods/2/tags", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, `{"data": [{"name": "Unity"}]}`)
		case http.MethodPost:
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, []string{"Maps", "Easy"}, r.PostForm["tags[]"])
			writeJSON(w, http.StatusCreated, `{"code": 201, "message": "ok"}`)
		case http.MethodDelete:
			assert.Equal(t, []string{"Maps"}, readForm(t, r)["tags[]"])
			w.WriteHeader(http.StatusNoContent)
		}
	})

	tags, err := client.GetModTags(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Unity", tags.Data[0].Name)

	_, err = client.AddModTags(context.Background(), 2, []string{"Maps", "Easy"})
	require.NoError(t, err)
	require.NoError(t, client.DeleteModTags(context.Background(), 2, []string{"Maps"}))

	_, err = client.AddModTags(context.Background(), 2, nil)
	assert.ErrorIs(t, err, modio.ErrNoTags)
}

func TestSubscriptions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/games/7/mods/2/subscribe" && r.Method == http.MethodPost:
			writeJSON(w, http.StatusCreated, `{"id": 2, "name": "Rogue Knight"}`)
		case r.URL.Path == "/games/7/mods/2/subscribe" && r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/me/subscribed":
			assert.Equal(t, "7", r.URL.Query().Get("game_id"))
			writeJSON(w, http.StatusOK, `{"data": [{"id": 2}], "result_total": 1}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	mod, err := client.SubscribeToMod(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Rogue Knight", mod.Name)

	subs, err := client.GetUserSubscriptions(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, subs.ResultTotal)

	require.NoError(t, client.UnsubscribeFromMod(context.Background(), 2))
}
