package sdk

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/minepkg/modio/internals/cache"
	"github.com/minepkg/modio/internals/downloadmgr"
	"github.com/minepkg/modio/pkg/modio"
)

// modDownload is the archive download of a single mod. Failures are kept
// per mod so one broken download does not cancel the others
type modDownload struct {
	*downloadmgr.HTTPItem
	modID   uint32
	modfile modio.Modfile
	err     error
}

func (d *modDownload) Download(ctx context.Context) error {
	d.err = d.HTTPItem.Download(ctx)
	return ctx.Err()
}

// downloadResult is the outcome of a download, handed to the download listener
type downloadResult struct {
	modID uint32
	code  int
}

// DownloadMod downloads the live file of a mod into the mod directory. The download
// listener is called with the result. A mod that is already being downloaded is ignored
func (i *Instance) DownloadMod(modID uint32) {
	i.DownloadMods(modID)
}

// DownloadMods downloads multiple mods in parallel. See DownloadMod
func (i *Instance) DownloadMods(modIDs ...uint32) {
	i.mu.Lock()
	queued := make([]uint32, 0, len(modIDs))
	for _, modID := range modIDs {
		if i.downloading[modID] {
			i.logger.Debug("download already running", "mod", modID)
			continue
		}
		i.downloading[modID] = true
		queued = append(queued, modID)
	}
	i.mu.Unlock()

	if len(queued) == 0 {
		return
	}

	async(i, "download", http.StatusOK, func(ctx context.Context) ([]downloadResult, error) {
		return i.download(ctx, queued), nil
	}, func(res Response, results []downloadResult) {
		if res.Err != nil {
			// the call itself did not run
			results = make([]downloadResult, len(queued))
			for n, modID := range queued {
				results[n] = downloadResult{modID: modID, code: res.Code}
			}
		}

		i.mu.Lock()
		listener := i.downloadListener
		for _, result := range results {
			delete(i.downloading, result.modID)
		}
		i.mu.Unlock()

		if listener == nil {
			return
		}
		for _, result := range results {
			listener(result.code, result.modID)
		}
	})
}

// download resolves the modfiles and downloads all archives
func (i *Instance) download(ctx context.Context, modIDs []uint32) []downloadResult {
	results := make([]downloadResult, 0, len(modIDs))
	fail := func(modID uint32, err error) {
		i.logger.Warn("download failed", "mod", modID, "err", err)
		results = append(results, downloadResult{modID: modID, code: statusOf(err)})
	}

	mgr := downloadmgr.New()
	downloads := make([]*modDownload, 0, len(modIDs))
	for _, modID := range modIDs {
		modfile, err := i.liveModfile(ctx, modID)
		if err != nil {
			fail(modID, err)
			continue
		}

		item := downloadmgr.NewHTTPItem(modfile.Download.BinaryURL, i.cache.ArchivePath(modID))
		item.Client = i.client.HTTP
		item.MD5 = modfile.Filehash.MD5
		item.Size = modfile.Filesize

		d := &modDownload{HTTPItem: item, modID: modID, modfile: *modfile}
		downloads = append(downloads, d)
		mgr.Add(d)
	}

	mgr.OnProgress = func(p int) {
		i.logger.Debug("download progress", "percent", p)
	}
	if err := mgr.Start(ctx); err != nil {
		for _, d := range downloads {
			if d.err == nil {
				d.err = err
			}
		}
	}

	for _, d := range downloads {
		if d.err != nil {
			fail(d.modID, d.err)
			continue
		}
		err := i.cache.MarkDownloaded(cache.DownloadedMod{
			ModID:   d.modID,
			Modfile: d.modfile,
			Path:    d.Target,
		})
		if err != nil {
			fail(d.modID, err)
			continue
		}
		i.logger.Info("downloaded mod", "mod", d.modID, "file", d.modfile.Filename)
		results = append(results, downloadResult{modID: d.modID, code: http.StatusOK})
	}
	return results
}

// liveModfile returns the live modfile of a mod with a download link that is not expired
func (i *Instance) liveModfile(ctx context.Context, modID uint32) (*modio.Modfile, error) {
	mod, err := i.client.GetMod(ctx, modID)
	if err != nil {
		return nil, err
	}
	if !mod.HasModfile() {
		return nil, fmt.Errorf("%w: %d", ErrNoModfile, modID)
	}

	modfile := &mod.Modfile
	if modfile.Download.Expired(time.Now()) {
		// the mod object might be cached longer than the link is valid
		modfile, err = i.client.GetModfile(ctx, modID, modfile.ID)
		if err != nil {
			return nil, err
		}
	}
	// files that are still being scanned have no link yet
	if modfile.Download.BinaryURL == "" {
		return nil, fmt.Errorf("%w: %d", ErrNoModfile, modID)
	}
	return modfile, nil
}

// Update is an installed mod with a newer live file
type Update struct {
	Installed InstalledMod
	Latest    modio.Modfile
}

// CheckForUpdates reports all installed mods that have a newer live file
func (i *Instance) CheckForUpdates(cb func(Response, []Update)) {
	installed := i.cache.Installed()
	async(i, "check-updates", http.StatusOK, func(ctx context.Context) ([]Update, error) {
		return i.checkForUpdates(ctx, installed)
	}, cb)
}

func (i *Instance) checkForUpdates(ctx context.Context, installed []InstalledMod) ([]Update, error) {
	updates := []Update{}
	// the id filter is sent as query parameter, 100 ids per request
	for start := 0; start < len(installed); start += 100 {
		end := start + 100
		if end > len(installed) {
			end = len(installed)
		}
		batch := installed[start:end]

		query := &modio.ModsQuery{Limit: len(batch), IDs: make([]uint32, len(batch))}
		for n, mod := range batch {
			query.IDs[n] = mod.ModID
		}
		page, err := i.client.GetMods(ctx, query)
		if err != nil {
			return nil, err
		}

		latest := make(map[uint32]modio.Modfile, len(page.Data))
		for _, mod := range page.Data {
			latest[mod.ID] = mod.Modfile
		}
		for _, mod := range batch {
			modfile, ok := latest[mod.ModID]
			if ok && mod.Outdated(&modfile) {
				updates = append(updates, Update{Installed: mod, Latest: modfile})
			}
		}
	}
	return updates, nil
}
