// Package sdk drives the mod.io API for a host application such as a game.
//
// All API operations run asynchronously. Their callbacks are never invoked on a
// background goroutine: completed calls are queued and delivered when the host
// calls Process, usually once per frame.
//
//	instance, err := sdk.New(sdk.Config{GameID: 1234, APIKey: "..."})
//	if err != nil {
//		return err
//	}
//	defer instance.Shutdown()
//
//	instance.GetMods(nil, func(res sdk.Response, mods []modio.Mod) {
//		// runs inside Process
//	})
//	for running {
//		instance.Process()
//	}
package sdk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/minepkg/modio/internals/cache"
	"github.com/minepkg/modio/internals/credentials"
	"github.com/minepkg/modio/internals/ownhttp"
	"github.com/minepkg/modio/pkg/modio"
)

var (
	// ErrMissingGameID is returned by New without a game id
	ErrMissingGameID = errors.New("game id is required")
	// ErrMissingAPIKey is returned by New without an api key
	ErrMissingAPIKey = errors.New("api key is required")
	// ErrShutdown is handed to callbacks of calls made after Shutdown
	ErrShutdown = errors.New("modio instance is shut down")
	// ErrNoModfile is returned when downloading a mod without a live file
	ErrNoModfile = errors.New("mod has no downloadable file")
)

// DefaultRootDir is the directory used for mods and credentials if none is configured
const DefaultRootDir = ".modio"

// DefaultMaxConcurrent is the number of calls that run in parallel if none is configured
const DefaultMaxConcurrent = 8

type (
	// InstalledMod is a mod extracted to the local mod directory
	InstalledMod = cache.InstalledMod
	// DownloadedMod is a downloaded archive waiting to be installed
	DownloadedMod = cache.DownloadedMod
)

// Config configures a new Instance
type Config struct {
	GameID      uint32
	APIKey      string
	Environment modio.Environment
	// BaseURL overwrites the API url of Environment
	BaseURL string
	// RootDir contains downloaded and installed mods. Defaults to ".modio"
	RootDir string
	// HTTP is used for API calls and downloads. Defaults to a client limited to 10 requests per second
	HTTP *http.Client
	// Logger receives debug and progress output. Nothing is logged if nil
	Logger *log.Logger
	// MaxConcurrent limits the number of calls running at the same time
	MaxConcurrent int
	// AutoDownload downloads mods right after subscribing to them
	AutoDownload bool
	// Credentials persists the access token. Defaults to the OS keyring with RootDir as fallback
	Credentials *credentials.Store
}

// Instance is a mod.io session of a game
type Instance struct {
	client       *modio.Client
	cache        *cache.Cache
	credentials  *credentials.Store
	logger       *log.Logger
	autoDownload bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	sem    chan struct{}

	mu               sync.Mutex
	completions      []func()
	inFlight         int
	shutdown         bool
	downloading      map[uint32]bool
	downloadListener func(code int, modID uint32)
}

// New creates a new Instance. A previously persisted login is restored and
// archives downloaded in an earlier session are installed
func New(cfg Config) (*Instance, error) {
	if cfg.GameID == 0 {
		return nil, ErrMissingGameID
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.RootDir == "" {
		cfg.RootDir = DefaultRootDir
	}
	if cfg.HTTP == nil {
		cfg.HTTP = ownhttp.NewThrottled(10, 10)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultMaxConcurrent
	}
	if cfg.Credentials == nil {
		cfg.Credentials = credentials.New(cfg.RootDir)
	}

	modCache, err := cache.Open(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("could not open mod directory: %w", err)
	}

	client := modio.New(modio.Config{
		Environment: cfg.Environment,
		BaseURL:     cfg.BaseURL,
		GameID:      cfg.GameID,
		APIKey:      cfg.APIKey,
		HTTP:        cfg.HTTP,
		Logger:      cfg.Logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	i := &Instance{
		client:       client,
		cache:        modCache,
		credentials:  cfg.Credentials,
		logger:       cfg.Logger,
		autoDownload: cfg.AutoDownload,
		ctx:          ctx,
		cancel:       cancel,
		sem:          make(chan struct{}, cfg.MaxConcurrent),
		downloading:  map[uint32]bool{},
	}

	token, err := i.credentials.Get(cfg.GameID)
	switch {
	case err != nil:
		i.logger.Warn("could not read stored credentials", "err", err)
	case token.Valid():
		client.SetToken(token)
		i.logger.Debug("restored login")
	}

	if err := i.InstallDownloadedMods(); err != nil {
		i.logger.Warn("could not install all downloaded mods", "err", err)
	}

	return i, nil
}

// Client returns the underlying API client for synchronous calls
func (i *Instance) Client() *modio.Client {
	return i.client
}

// IsLoggedIn returns true if there is a valid access token
func (i *Instance) IsLoggedIn() bool {
	return i.client.HasToken()
}

// Logout forgets the access token and removes it from the credential store
func (i *Instance) Logout() error {
	i.client.SetToken(nil)
	return i.credentials.Delete(i.client.GameID)
}

// SetDownloadListener sets the function that is called (inside Process) for every
// finished download with the status code and the mod id. Pass nil to remove it
func (i *Instance) SetDownloadListener(listener func(code int, modID uint32)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.downloadListener = listener
}

// Process invokes the callbacks of all completed calls in the order they completed
// and returns the number of invoked callbacks. Calls made by callbacks complete in a
// later Process
func (i *Instance) Process() int {
	i.mu.Lock()
	queue := i.completions
	i.completions = nil
	i.mu.Unlock()

	for _, complete := range queue {
		complete()
	}
	return len(queue)
}

// Pending returns the number of running calls plus completed calls that wait for Process
func (i *Instance) Pending() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.inFlight + len(i.completions)
}

// Shutdown cancels all running calls and waits for them to stop. Undelivered
// callbacks are dropped. Calls made after Shutdown complete with ErrShutdown
func (i *Instance) Shutdown() {
	i.mu.Lock()
	if i.shutdown {
		i.mu.Unlock()
		return
	}
	i.shutdown = true
	i.mu.Unlock()

	i.cancel()
	i.wg.Wait()

	i.mu.Lock()
	dropped := len(i.completions)
	i.completions = nil
	i.mu.Unlock()
	i.logger.Debug("shut down", "dropped", dropped)
}

// InstallDownloadedMods extracts all downloaded archives into the mod directory.
// It blocks until all mods are installed
func (i *Instance) InstallDownloadedMods() error {
	installed, err := i.cache.InstallAll()
	for _, mod := range installed {
		i.logger.Info("installed mod", "mod", mod.ModID, "version", mod.Modfile.Version)
	}
	return err
}

// UninstallMod removes an installed mod
func (i *Instance) UninstallMod(modID uint32) error {
	return i.cache.Uninstall(modID)
}

// InstalledMods returns all installed mods
func (i *Instance) InstalledMods() []InstalledMod {
	return i.cache.Installed()
}

// DownloadedMods returns all downloaded mods that are not installed yet
func (i *Instance) DownloadedMods() []DownloadedMod {
	return i.cache.Downloaded()
}

// ClearMods removes all downloaded and installed mods
func (i *Instance) ClearMods() error {
	return i.cache.Clear()
}
