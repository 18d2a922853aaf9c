package modio

import (
	"context"
	"net/http"
)

// GetMods gets all mods of the game matching the query. Pass nil to not filter
func (c *Client) GetMods(ctx context.Context, query *ModsQuery) (*Page[Mod], error) {
	values, err := query.Values()
	if err != nil {
		return nil, err
	}

	page := &Page[Mod]{}
	if err := c.getJSON(ctx, c.gamePath("/mods"), values, page); err != nil {
		return nil, err
	}
	return page, nil
}

// GetMod gets a single mod
func (c *Client) GetMod(ctx context.Context, modID uint32) (*Mod, error) {
	mod := &Mod{}
	if err := c.getJSON(ctx, c.modPath(modID), nil, mod); err != nil {
		return nil, err
	}
	return mod, nil
}

// EditMod changes the given fields of a mod and returns the updated mod.
// A nil or empty request fails with ErrEmptyEdit
func (c *Client) EditMod(ctx context.Context, modID uint32, edit *EditModRequest) (*Mod, error) {
	if edit == nil {
		return nil, ErrEmptyEdit
	}
	form := edit.form()
	if len(form) == 0 {
		return nil, ErrEmptyEdit
	}

	mod := &Mod{}
	if err := c.sendForm(ctx, http.MethodPut, c.modPath(modID), form, mod); err != nil {
		return nil, err
	}
	return mod, nil
}

// DeleteMod deletes a mod. mod.io only marks it as deleted, it can be restored
// with EditMod by setting the status
func (c *Client) DeleteMod(ctx context.Context, modID uint32) error {
	return c.sendForm(ctx, http.MethodDelete, c.modPath(modID), nil, nil)
}
