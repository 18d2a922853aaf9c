package modio

import (
	"context"
	"net/http"
)

// GetModTags gets all tags of a mod
func (c *Client) GetModTags(ctx context.Context, modID uint32) (*Page[Tag], error) {
	page := &Page[Tag]{}
	if err := c.getJSON(ctx, c.modPath(modID, "/tags"), nil, page); err != nil {
		return nil, err
	}
	return page, nil
}

// AddModTags adds tags to a mod. Tags have to be defined by the game
func (c *Client) AddModTags(ctx context.Context, modID uint32, tags []string) (*Message, error) {
	if len(tags) == 0 {
		return nil, ErrNoTags
	}

	msg := &Message{}
	if err := c.sendForm(ctx, http.MethodPost, c.modPath(modID, "/tags"), arrayForm("tags", tags), msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// DeleteModTags removes tags from a mod
func (c *Client) DeleteModTags(ctx context.Context, modID uint32, tags []string) error {
	if len(tags) == 0 {
		return ErrNoTags
	}
	return c.sendForm(ctx, http.MethodDelete, c.modPath(modID, "/tags"), arrayForm("tags", tags), nil)
}
