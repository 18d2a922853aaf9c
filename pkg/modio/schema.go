package modio

import (
	"time"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/oauth2"
)

const (
	// VirusStatusNotScanned indicates that the modfile was not scanned yet
	VirusStatusNotScanned = 0
	// VirusStatusScanComplete indicates that the scan finished
	VirusStatusScanComplete = 1
	// VirusStatusInProgress indicates that the modfile is currently being scanned
	VirusStatusInProgress = 2

	// ModStatusNotAccepted indicates a mod that was not accepted (yet)
	ModStatusNotAccepted = 0
	// ModStatusAccepted indicates a mod that is live
	ModStatusAccepted = 1
	// ModStatusDeleted indicates a deleted mod
	ModStatusDeleted = 3
)

// Filehash contains the checksums of a modfile
type Filehash struct {
	// MD5 is the hex encoded md5 hash of the file. The key is always present
	// when encoded, even if the hash is unknown
	MD5 string `json:"md5"`
}

// Download contains the (expiring) download link of a modfile
type Download struct {
	BinaryURL   string `json:"binary_url"`
	DateExpires int64  `json:"date_expires"`
}

// Expired returns true if the download link expired at `now`
func (d *Download) Expired(now time.Time) bool {
	return d.DateExpires != 0 && now.Unix() >= d.DateExpires
}

// Modfile is an uploaded (zip) file of a mod
type Modfile struct {
	ID             uint32   `json:"id"`
	ModID          uint32   `json:"mod_id"`
	DateAdded      int64    `json:"date_added"`
	DateScanned    int64    `json:"date_scanned"`
	VirusStatus    int      `json:"virus_status"`
	VirusPositive  int      `json:"virus_positive"`
	VirustotalHash string   `json:"virustotal_hash"`
	Filesize       int64    `json:"filesize"`
	Filehash       Filehash `json:"filehash"`
	Filename       string   `json:"filename"`
	Version        string   `json:"version"`
	Changelog      string   `json:"changelog"`
	MetadataBlob   string   `json:"metadata_blob"`
	Download       Download `json:"download"`
}

// SemverVersion returns the Version as a `semver.Version` or nil if it
// is not a valid semver version
func (m *Modfile) SemverVersion() *semver.Version {
	if m.Version == "" {
		return nil
	}
	v, err := semver.NewVersion(m.Version)
	if err != nil {
		return nil
	}
	return v
}

// Logo is the logo of a mod in multiple resolutions
type Logo struct {
	Filename      string `json:"filename"`
	Original      string `json:"original"`
	Thumb320x180  string `json:"thumb_320x180"`
	Thumb640x360  string `json:"thumb_640x360"`
	Thumb1280x720 string `json:"thumb_1280x720"`
}

// Image is a gallery image of a mod
type Image struct {
	Filename     string `json:"filename"`
	Original     string `json:"original"`
	Thumb320x180 string `json:"thumb_320x180"`
}

// Media contains all additional media of a mod
type Media struct {
	Youtube   []string `json:"youtube"`
	Sketchfab []string `json:"sketchfab"`
	Images    []Image  `json:"images"`
}

// Avatar is the avatar of a user
type Avatar struct {
	Filename     string `json:"filename"`
	Original     string `json:"original"`
	Thumb50x50   string `json:"thumb_50x50"`
	Thumb100x100 string `json:"thumb_100x100"`
}

// User is a mod.io user
type User struct {
	ID         uint32 `json:"id"`
	NameID     string `json:"name_id"`
	Username   string `json:"username"`
	DateOnline int64  `json:"date_online"`
	Avatar     Avatar `json:"avatar"`
	Timezone   string `json:"timezone"`
	Language   string `json:"language"`
	ProfileURL string `json:"profile_url"`
}

// Stats are the download and rating statistics of a mod
type Stats struct {
	ModID                     uint32  `json:"mod_id"`
	PopularityRankPosition    int     `json:"popularity_rank_position"`
	PopularityRankTotalMods   int     `json:"popularity_rank_total_mods"`
	DownloadsTotal            int     `json:"downloads_total"`
	SubscribersTotal          int     `json:"subscribers_total"`
	RatingsTotal              int     `json:"ratings_total"`
	RatingsPositive           int     `json:"ratings_positive"`
	RatingsNegative           int     `json:"ratings_negative"`
	RatingsPercentagePositive int     `json:"ratings_percentage_positive"`
	RatingsWeightedAggregate  float64 `json:"ratings_weighted_aggregate"`
	RatingsDisplayText        string  `json:"ratings_display_text"`
	DateExpires               int64   `json:"date_expires"`
}

// Tag is a tag of a mod
type Tag struct {
	Name      string `json:"name"`
	DateAdded int64  `json:"date_added"`
}

// MetadataKVP is a key value pair of game defined metadata
type MetadataKVP struct {
	Key   string `json:"metakey"`
	Value string `json:"metavalue"`
}

// Mod is a mod (or map, or any other kind of user content) of a game
type Mod struct {
	ID                   uint32        `json:"id"`
	GameID               uint32        `json:"game_id"`
	Status               int           `json:"status"`
	Visible              int           `json:"visible"`
	SubmittedBy          User          `json:"submitted_by"`
	DateAdded            int64         `json:"date_added"`
	DateUpdated          int64         `json:"date_updated"`
	DateLive             int64         `json:"date_live"`
	MaturityOption       int           `json:"maturity_option"`
	Logo                 Logo          `json:"logo"`
	HomepageURL          string        `json:"homepage_url"`
	Name                 string        `json:"name"`
	NameID               string        `json:"name_id"`
	Summary              string        `json:"summary"`
	Description          string        `json:"description"`
	DescriptionPlaintext string        `json:"description_plaintext"`
	MetadataBlob         string        `json:"metadata_blob"`
	ProfileURL           string        `json:"profile_url"`
	Media                Media         `json:"media"`
	// Modfile is the primary (live) file of this mod. An ID of 0 means
	// that the mod has no downloadable file
	Modfile              Modfile       `json:"modfile"`
	Stats                Stats         `json:"stats"`
	Tags                 []Tag         `json:"tags"`
	MetadataKVP          []MetadataKVP `json:"metadata_kvp"`
}

// HasModfile returns true if the mod has a downloadable primary file
func (m *Mod) HasModfile() bool {
	return m.Modfile.ID != 0 && m.Modfile.Download.BinaryURL != ""
}

// Page is the envelope of all list endpoints
type Page[T any] struct {
	Data         []T `json:"data"`
	ResultCount  int `json:"result_count"`
	ResultOffset int `json:"result_offset"`
	ResultLimit  int `json:"result_limit"`
	ResultTotal  int `json:"result_total"`
}

// Message is returned by endpoints that do not return an object
type Message struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AccessToken is returned after a successful email exchange
type AccessToken struct {
	Code        int    `json:"code"`
	AccessToken string `json:"access_token"`
	DateExpires int64  `json:"date_expires"`
}

// Token converts the access token to an oauth2 token
func (a *AccessToken) Token() *oauth2.Token {
	token := &oauth2.Token{
		AccessToken: a.AccessToken,
		TokenType:   "Bearer",
	}
	if a.DateExpires != 0 {
		token.Expiry = time.Unix(a.DateExpires, 0)
	}
	return token
}
