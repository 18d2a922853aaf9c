// Package cache manages the local mod directory: downloaded archives waiting
// to be installed, installed mods and the index that tracks both
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/mholt/archiver/v3"
	"github.com/minepkg/modio/pkg/modio"
)

const indexFile = "index.json"

var (
	// ErrNotDownloaded is returned when installing a mod that has no downloaded archive
	ErrNotDownloaded = errors.New("mod is not downloaded")
	// ErrNotInstalled is returned when uninstalling a mod that is not installed
	ErrNotInstalled = errors.New("mod is not installed")
)

// DownloadedMod is an archive in the tmp directory that is not installed yet
type DownloadedMod struct {
	ModID          uint32        `json:"mod_id"`
	Modfile        modio.Modfile `json:"modfile"`
	Path           string        `json:"path"`
	DateDownloaded int64         `json:"date_downloaded"`
}

// InstalledMod is an extracted mod in the mods directory
type InstalledMod struct {
	ModID         uint32        `json:"mod_id"`
	Modfile       modio.Modfile `json:"modfile"`
	Path          string        `json:"path"`
	DateInstalled int64         `json:"date_installed"`
}

// Outdated returns true if `latest` is a different and newer file than the installed one.
// Versions are compared as semver if both parse, otherwise the upload date decides
func (m *InstalledMod) Outdated(latest *modio.Modfile) bool {
	if latest == nil || latest.ID == 0 || latest.ID == m.Modfile.ID {
		return false
	}

	current := m.Modfile.SemverVersion()
	next := latest.SemverVersion()
	if current != nil && next != nil {
		return next.GreaterThan(current)
	}
	return latest.DateAdded > m.Modfile.DateAdded
}

type index struct {
	Downloaded []DownloadedMod `json:"downloaded"`
	Installed  []InstalledMod  `json:"installed"`
}

// Cache is the local mod directory. It is safe for concurrent use
type Cache struct {
	root string

	mu    sync.Mutex
	index index
}

// Open opens (and creates if needed) the mod directory at root
func Open(root string) (*Cache, error) {
	c := &Cache{root: root}
	for _, dir := range []string{c.modsDir(), c.tmpDir()} {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
	}

	raw, err := os.ReadFile(filepath.Join(root, indexFile))
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &c.index); err != nil {
			return nil, fmt.Errorf("could not parse %s: %w", indexFile, err)
		}
	case os.IsNotExist(err):
		// fresh directory
	default:
		return nil, err
	}

	return c, nil
}

// Root returns the root directory
func (c *Cache) Root() string { return c.root }

func (c *Cache) modsDir() string { return filepath.Join(c.root, "mods") }
func (c *Cache) tmpDir() string  { return filepath.Join(c.root, "tmp") }

// ArchivePath returns where the downloaded archive of a mod is stored
func (c *Cache) ArchivePath(modID uint32) string {
	return filepath.Join(c.tmpDir(), fmt.Sprintf("%d_modfile.zip", modID))
}

// InstallPath returns the directory a mod is extracted to
func (c *Cache) InstallPath(modID uint32) string {
	return filepath.Join(c.modsDir(), fmt.Sprintf("%d", modID))
}

// MarkDownloaded records a downloaded archive. A previous download of the same mod is replaced
func (c *Cache) MarkDownloaded(d DownloadedMod) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d.Path == "" {
		d.Path = c.ArchivePath(d.ModID)
	}
	if d.DateDownloaded == 0 {
		d.DateDownloaded = time.Now().Unix()
	}

	c.index.Downloaded = removeDownloaded(c.index.Downloaded, d.ModID)
	c.index.Downloaded = append(c.index.Downloaded, d)
	return c.persist()
}

// Downloaded returns all archives that are waiting to be installed
func (c *Cache) Downloaded() []DownloadedMod {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]DownloadedMod(nil), c.index.Downloaded...)
}

// Install extracts the downloaded archive of a mod, replacing any previous install.
// The archive is removed afterwards
func (c *Cache) Install(modID uint32) (*InstalledMod, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.install(modID)
}

func (c *Cache) install(modID uint32) (*InstalledMod, error) {
	var downloaded *DownloadedMod
	for i := range c.index.Downloaded {
		if c.index.Downloaded[i].ModID == modID {
			downloaded = &c.index.Downloaded[i]
			break
		}
	}
	if downloaded == nil {
		return nil, fmt.Errorf("%w: %d", ErrNotDownloaded, modID)
	}

	target := c.InstallPath(modID)
	tmpTarget := target + ".tmp"
	os.RemoveAll(tmpTarget)

	if err := archiver.Unarchive(downloaded.Path, tmpTarget); err != nil {
		os.RemoveAll(tmpTarget)
		return nil, fmt.Errorf("could not extract mod %d: %w", modID, err)
	}
	if err := os.RemoveAll(target); err != nil {
		return nil, err
	}
	if err := os.Rename(tmpTarget, target); err != nil {
		return nil, err
	}

	installed := InstalledMod{
		ModID:         modID,
		Modfile:       downloaded.Modfile,
		Path:          target,
		DateInstalled: time.Now().Unix(),
	}
	os.Remove(downloaded.Path)

	c.index.Downloaded = removeDownloaded(c.index.Downloaded, modID)
	c.index.Installed = removeInstalled(c.index.Installed, modID)
	c.index.Installed = append(c.index.Installed, installed)
	if err := c.persist(); err != nil {
		return nil, err
	}
	return &installed, nil
}

// InstallAll installs every downloaded archive. It does not stop at the first failure,
// all errors are returned joined
func (c *Cache) InstallAll() ([]InstalledMod, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pending := make([]uint32, len(c.index.Downloaded))
	for i, d := range c.index.Downloaded {
		pending[i] = d.ModID
	}

	installed := make([]InstalledMod, 0, len(pending))
	var errs []error
	for _, modID := range pending {
		mod, err := c.install(modID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		installed = append(installed, *mod)
	}
	return installed, errors.Join(errs...)
}

// Uninstall removes an installed mod and any archive of it that waits for installation
func (c *Cache) Uninstall(modID uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	found := false
	for _, m := range c.index.Installed {
		if m.ModID == modID {
			found = true
			break
		}
	}
	for _, d := range c.index.Downloaded {
		if d.ModID == modID {
			os.Remove(d.Path)
		}
	}
	c.index.Downloaded = removeDownloaded(c.index.Downloaded, modID)

	if !found {
		if err := c.persist(); err != nil {
			return err
		}
		return fmt.Errorf("%w: %d", ErrNotInstalled, modID)
	}

	if err := os.RemoveAll(c.InstallPath(modID)); err != nil {
		return err
	}
	c.index.Installed = removeInstalled(c.index.Installed, modID)
	return c.persist()
}

// Installed returns all installed mods sorted by id
func (c *Cache) Installed() []InstalledMod {
	c.mu.Lock()
	defer c.mu.Unlock()

	installed := append([]InstalledMod(nil), c.index.Installed...)
	sort.Slice(installed, func(i, j int) bool { return installed[i].ModID < installed[j].ModID })
	return installed
}

// InstalledMod returns a single installed mod
func (c *Cache) InstalledMod(modID uint32) (*InstalledMod, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range c.index.Installed {
		if m.ModID == modID {
			m := m
			return &m, true
		}
	}
	return nil, false
}

// Clear removes all downloaded and installed mods
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, dir := range []string{c.modsDir(), c.tmpDir()} {
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}
	c.index = index{}
	return c.persist()
}

// persist writes the index to a temporary file first and then moves it into place
func (c *Cache) persist() error {
	raw, err := json.MarshalIndent(c.index, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.root, indexFile+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(c.root, indexFile))
}

func removeDownloaded(list []DownloadedMod, modID uint32) []DownloadedMod {
	out := list[:0]
	for _, d := range list {
		if d.ModID != modID {
			out = append(out, d)
		}
	}
	return out
}

func removeInstalled(list []InstalledMod, modID uint32) []InstalledMod {
	out := list[:0]
	for _, m := range list {
		if m.ModID != modID {
			out = append(out, m)
		}
	}
	return out
}
