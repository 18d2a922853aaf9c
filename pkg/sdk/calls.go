package sdk

import (
	"context"
	"errors"
	"net/http"

	"github.com/minepkg/modio/internals/cache"
	"github.com/minepkg/modio/pkg/modio"
)

// EmailRequest sends a security code to the given email address
func (i *Instance) EmailRequest(email string, cb func(Response)) {
	async(i, "email-request", http.StatusOK, func(ctx context.Context) (*modio.Message, error) {
		return i.client.EmailRequest(ctx, email)
	}, func(res Response, _ *modio.Message) {
		if cb != nil {
			cb(res)
		}
	})
}

// EmailExchange logs in with the security code from EmailRequest. The token is persisted
func (i *Instance) EmailExchange(securityCode string, cb func(Response)) {
	async(i, "email-exchange", http.StatusOK, func(ctx context.Context) (*modio.AccessToken, error) {
		accessToken, err := i.client.EmailExchange(ctx, securityCode)
		if err != nil {
			return nil, err
		}
		if err := i.credentials.Set(i.client.GameID, accessToken.Token()); err != nil {
			i.logger.Warn("could not persist login", "err", err)
		}
		return accessToken, nil
	}, func(res Response, _ *modio.AccessToken) {
		if cb != nil {
			cb(res)
		}
	})
}

// GetAuthenticatedUser gets the logged in user
func (i *Instance) GetAuthenticatedUser(cb func(Response, *modio.User)) {
	async(i, "me", http.StatusOK, i.client.GetAuthenticatedUser, cb)
}

// GetMods lists mods of the game. query can be nil
func (i *Instance) GetMods(query *modio.ModsQuery, cb func(Response, []modio.Mod)) {
	asyncPage(i, "get-mods", func(ctx context.Context) (*modio.Page[modio.Mod], error) {
		return i.client.GetMods(ctx, query)
	}, cb)
}

// GetMod gets a single mod
func (i *Instance) GetMod(modID uint32, cb func(Response, *modio.Mod)) {
	async(i, "get-mod", http.StatusOK, func(ctx context.Context) (*modio.Mod, error) {
		return i.client.GetMod(ctx, modID)
	}, cb)
}

// EditMod changes fields of a mod
func (i *Instance) EditMod(modID uint32, edit *modio.EditModRequest, cb func(Response, *modio.Mod)) {
	async(i, "edit-mod", http.StatusOK, func(ctx context.Context) (*modio.Mod, error) {
		return i.client.EditMod(ctx, modID, edit)
	}, cb)
}

// GetModfiles lists all files of a mod
func (i *Instance) GetModfiles(modID uint32, cb func(Response, []modio.Modfile)) {
	asyncPage(i, "get-modfiles", func(ctx context.Context) (*modio.Page[modio.Modfile], error) {
		return i.client.GetModfiles(ctx, modID)
	}, cb)
}

// AddModYoutubeLinks adds YouTube links to a mod
func (i *Instance) AddModYoutubeLinks(modID uint32, links []string, cb func(Response)) {
	i.writeMessage("add-youtube", cb, func(ctx context.Context) (*modio.Message, error) {
		return i.client.AddModYoutubeLinks(ctx, modID, links)
	})
}

// DeleteModYoutubeLinks removes YouTube links from a mod
func (i *Instance) DeleteModYoutubeLinks(modID uint32, links []string, cb func(Response)) {
	i.writeNoContent("delete-youtube", cb, func(ctx context.Context) error {
		return i.client.DeleteModYoutubeLinks(ctx, modID, links)
	})
}

// AddModSketchfabLinks adds Sketchfab links to a mod
func (i *Instance) AddModSketchfabLinks(modID uint32, links []string, cb func(Response)) {
	i.writeMessage("add-sketchfab", cb, func(ctx context.Context) (*modio.Message, error) {
		return i.client.AddModSketchfabLinks(ctx, modID, links)
	})
}

// DeleteModSketchfabLinks removes Sketchfab links from a mod
func (i *Instance) DeleteModSketchfabLinks(modID uint32, links []string, cb func(Response)) {
	i.writeNoContent("delete-sketchfab", cb, func(ctx context.Context) error {
		return i.client.DeleteModSketchfabLinks(ctx, modID, links)
	})
}

// AddModTags adds tags to a mod
func (i *Instance) AddModTags(modID uint32, tags []string, cb func(Response)) {
	i.writeMessage("add-tags", cb, func(ctx context.Context) (*modio.Message, error) {
		return i.client.AddModTags(ctx, modID, tags)
	})
}

// DeleteModTags removes tags from a mod
func (i *Instance) DeleteModTags(modID uint32, tags []string, cb func(Response)) {
	i.writeNoContent("delete-tags", cb, func(ctx context.Context) error {
		return i.client.DeleteModTags(ctx, modID, tags)
	})
}

// SubscribeToMod subscribes the user to a mod. With AutoDownload the mod is
// downloaded afterwards
func (i *Instance) SubscribeToMod(modID uint32, cb func(Response, *modio.Mod)) {
	async(i, "subscribe", http.StatusCreated, func(ctx context.Context) (*modio.Mod, error) {
		return i.client.SubscribeToMod(ctx, modID)
	}, func(res Response, mod *modio.Mod) {
		if res.OK() && i.autoDownload {
			i.DownloadMod(modID)
		}
		if cb != nil {
			cb(res, mod)
		}
	})
}

// UnsubscribeFromMod unsubscribes the user from a mod and uninstalls it
func (i *Instance) UnsubscribeFromMod(modID uint32, cb func(Response)) {
	i.writeNoContent("unsubscribe", cb, func(ctx context.Context) error {
		if err := i.client.UnsubscribeFromMod(ctx, modID); err != nil {
			return err
		}
		if err := i.cache.Uninstall(modID); err != nil && !errors.Is(err, cache.ErrNotInstalled) {
			i.logger.Warn("could not uninstall mod", "mod", modID, "err", err)
		}
		return nil
	})
}

// GetUserSubscriptions lists the mods of this game the user is subscribed to
func (i *Instance) GetUserSubscriptions(query *modio.ModsQuery, cb func(Response, []modio.Mod)) {
	asyncPage(i, "subscriptions", func(ctx context.Context) (*modio.Page[modio.Mod], error) {
		return i.client.GetUserSubscriptions(ctx, query)
	}, cb)
}

// writeMessage runs a write call that responds with 201 and a message
func (i *Instance) writeMessage(name string, cb func(Response), run func(ctx context.Context) (*modio.Message, error)) {
	async(i, name, http.StatusCreated, run, func(res Response, _ *modio.Message) {
		if cb != nil {
			cb(res)
		}
	})
}

// writeNoContent runs a write call that responds with 204
func (i *Instance) writeNoContent(name string, cb func(Response), run func(ctx context.Context) error) {
	async(i, name, http.StatusNoContent, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, run(ctx)
	}, func(res Response, _ struct{}) {
		if cb != nil {
			cb(res)
		}
	})
}
