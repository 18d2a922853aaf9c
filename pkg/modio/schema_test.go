package modio_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/minepkg/modio/pkg/modio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modFixture = `{
	"id": 2,
	"game_id": 7,
	"status": 1,
	"visible": 1,
	"submitted_by": {"id": 1, "name_id": "xant", "username": "XanT", "avatar": {"thumb_50x50": "https://example.com/a.png"}},
	"date_added": 1492564103,
	"name": "Rogue Knight",
	"name_id": "rogue-knight",
	"summary": "Rogue Knight is a brand new 2D pixel platformer.",
	"logo": {"filename": "logo.png", "thumb_320x180": "https://example.com/logo_320.png"},
	"media": {"youtube": ["https://www.youtube.com/watch?v=dQw4w9WgXcQ"], "sketchfab": [], "images": [{"filename": "img.png"}]},
	"modfile": {
		"id": 2,
		"mod_id": 2,
		"filesize": 15181,
		"filehash": {"md5": "2d4a0e2d7273db6b0a94b0740a88ad0d"},
		"filename": "rogue-knight-v1.zip",
		"version": "1.3",
		"download": {"binary_url": "https://mod.io/mods/file/2/c489a0354111a4d76640d47f0cdcb294", "date_expires": 1579316848}
	},
	"stats": {"mod_id": 2, "downloads_total": 1230, "ratings_display_text": "Very Positive"},
	"tags": [{"name": "Unity", "date_added": 1499841487}],
	"metadata_kvp": [{"metakey": "pistol-dmg", "metavalue": "800"}],
	"some_future_field": true
}`

func TestModDecoding(t *testing.T) {
	mod := modio.Mod{}
	require.NoError(t, json.Unmarshal([]byte(modFixture), &mod))

	assert.Equal(t, uint32(2), mod.ID)
	assert.Equal(t, "XanT", mod.SubmittedBy.Username)
	assert.Equal(t, "https://example.com/a.png", mod.SubmittedBy.Avatar.Thumb50x50)
	assert.Equal(t, "2d4a0e2d7273db6b0a94b0740a88ad0d", mod.Modfile.Filehash.MD5)
	assert.Equal(t, int64(15181), mod.Modfile.Filesize)
	assert.Equal(t, []string{"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}, mod.Media.Youtube)
	assert.Len(t, mod.Media.Images, 1)
	assert.Equal(t, "Very Positive", mod.Stats.RatingsDisplayText)
	assert.Equal(t, "pistol-dmg", mod.MetadataKVP[0].Key)
	assert.True(t, mod.HasModfile())
}

func TestModWithoutModfile(t *testing.T) {
	mod := modio.Mod{}
	require.NoError(t, json.Unmarshal([]byte(`{"id": 3, "modfile": null}`), &mod))
	assert.False(t, mod.HasModfile())
}

func TestFilehashAlwaysEncodesMD5(t *testing.T) {
	data, err := json.Marshal(modio.Filehash{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"md5": ""}`, string(data))

	data, err = json.Marshal(modio.Filehash{MD5: "abc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"md5": "abc"}`, string(data))
}

func TestFilehashNullMD5(t *testing.T) {
	hash := modio.Filehash{}
	require.NoError(t, json.Unmarshal([]byte(`{"md5": null}`), &hash))
	assert.Empty(t, hash.MD5)
}

func TestAccessTokenToken(t *testing.T) {
	expires := time.Now().Add(time.Hour).Unix()
	token := (&modio.AccessToken{AccessToken: "abc", DateExpires: expires}).Token()

	assert.Equal(t, "abc", token.AccessToken)
	assert.Equal(t, "Bearer", token.Type())
	assert.Equal(t, expires, token.Expiry.Unix())
	assert.True(t, token.Valid())

	// no expiry means it never expires
	token = (&modio.AccessToken{AccessToken: "abc"}).Token()
	assert.True(t, token.Expiry.IsZero())
	assert.True(t, token.Valid())
}

func TestModfileSemverVersion(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"1.3", "1.3.0"},
		{"v2.0.1-beta1", "2.0.1-beta1"},
		{"", ""},
		{"release candidate", ""},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			modfile := modio.Modfile{Version: tt.version}
			v := modfile.SemverVersion()
			if tt.want == "" {
				assert.Nil(t, v)
				return
			}
			require.NotNil(t, v)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestDownloadExpired(t *testing.T) {
	now := time.Unix(1000, 0)
	assert.False(t, (&modio.Download{}).Expired(now))
	assert.False(t, (&modio.Download{DateExpires: 1001}).Expired(now))
	assert.True(t, (&modio.Download{DateExpires: 1000}).Expired(now))
}
