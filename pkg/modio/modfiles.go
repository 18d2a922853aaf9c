package modio

import (
	"context"
	"fmt"
)

// GetModfiles gets all files of a mod
func (c *Client) GetModfiles(ctx context.Context, modID uint32) (*Page[Modfile], error) {
	page := &Page[Modfile]{}
	if err := c.getJSON(ctx, c.modPath(modID, "/files"), nil, page); err != nil {
		return nil, err
	}
	return page, nil
}

// GetModfile gets a single file of a mod
func (c *Client) GetModfile(ctx context.Context, modID uint32, fileID uint32) (*Modfile, error) {
	modfile := &Modfile{}
	path := c.modPath(modID, fmt.Sprintf("/files/%d", fileID))
	if err := c.getJSON(ctx, path, nil, modfile); err != nil {
		return nil, err
	}
	return modfile, nil
}
