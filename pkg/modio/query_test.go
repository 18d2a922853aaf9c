package modio_test

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/minepkg/modio/pkg/modio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itoa(i int64) string {
	return strconv.FormatInt(i, 10)
}

func TestModsQueryValues(t *testing.T) {
	query := modio.ModsQuery{
		Limit:       20,
		Offset:      40,
		Sort:        "-date_live",
		Search:      "knight",
		Tags:        []string{"Unity", "Maps"},
		IDs:         []uint32{1, 2},
		SubmittedBy: 9,
	}

	values, err := query.Values()
	require.NoError(t, err)
	assert.Equal(t, "_limit=20&_offset=40&_q=knight&_sort=-date_live&id-in=1%2C2&submitted_by=9&tags-in=Unity%2CMaps", values.Encode())
}

func TestModsQueryZeroValues(t *testing.T) {
	var query *modio.ModsQuery
	values, err := query.Values()
	require.NoError(t, err)
	assert.Empty(t, values)

	values, err = (&modio.ModsQuery{}).Values()
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestModsQueryLimit(t *testing.T) {
	for _, q := range []modio.ModsQuery{{Limit: 101}, {Limit: -1}, {Offset: -5}} {
		_, err := q.Values()
		assert.ErrorIs(t, err, modio.ErrInvalidLimit)
	}
}

func TestGetMods(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/7/mods", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("_limit"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		writeJSON(w, http.StatusOK, `{
			"data": [`+modFixture+`, {"id": 3, "name": "Other"}],
			"result_count": 2, "result_offset": 0, "result_limit": 5, "result_total": 12
		}`)
	})

	page, err := client.GetMods(context.Background(), &modio.ModsQuery{Limit: 5})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Rogue Knight", page.Data[0].Name)
	assert.Equal(t, 12, page.ResultTotal)
	assert.Equal(t, 5, page.ResultLimit)
}
