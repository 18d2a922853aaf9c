package modio

import (
	"context"
	"net/http"
	"strconv"
)

// SubscribeToMod subscribes the authenticated user to a mod and returns the mod
func (c *Client) SubscribeToMod(ctx context.Context, modID uint32) (*Mod, error) {
	mod := &Mod{}
	if err := c.sendForm(ctx, http.MethodPost, c.modPath(modID, "/subscribe"), nil, mod); err != nil {
		return nil, err
	}
	return mod, nil
}

// UnsubscribeFromMod removes the subscription of the authenticated user
func (c *Client) UnsubscribeFromMod(ctx context.Context, modID uint32) error {
	return c.sendForm(ctx, http.MethodDelete, c.modPath(modID, "/subscribe"), nil, nil)
}

// GetUserSubscriptions gets all mods of the current game the authenticated user is subscribed to
func (c *Client) GetUserSubscriptions(ctx context.Context, query *ModsQuery) (*Page[Mod], error) {
	values, err := query.Values()
	if err != nil {
		return nil, err
	}
	values.Set("game_id", strconv.FormatUint(uint64(c.GameID), 10))

	page := &Page[Mod]{}
	if err := c.getJSON(ctx, "/me/subscribed", values, page); err != nil {
		return nil, err
	}
	return page, nil
}
