package modio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// AddModYoutubeLinks adds YouTube links to the media of a mod. mod.io responds with 201
func (c *Client) AddModYoutubeLinks(ctx context.Context, modID uint32, links []string) (*Message, error) {
	return c.addMedia(ctx, modID, "youtube", links)
}

// DeleteModYoutubeLinks removes YouTube links from the media of a mod
func (c *Client) DeleteModYoutubeLinks(ctx context.Context, modID uint32, links []string) error {
	return c.deleteMedia(ctx, modID, "youtube", links)
}

// AddModSketchfabLinks adds Sketchfab links to the media of a mod
func (c *Client) AddModSketchfabLinks(ctx context.Context, modID uint32, links []string) (*Message, error) {
	return c.addMedia(ctx, modID, "sketchfab", links)
}

// DeleteModSketchfabLinks removes Sketchfab links from the media of a mod
func (c *Client) DeleteModSketchfabLinks(ctx context.Context, modID uint32, links []string) error {
	return c.deleteMedia(ctx, modID, "sketchfab", links)
}

func (c *Client) addMedia(ctx context.Context, modID uint32, kind string, links []string) (*Message, error) {
	if err := validateLinks(links); err != nil {
		return nil, err
	}

	msg := &Message{}
	err := c.sendForm(ctx, http.MethodPost, c.modPath(modID, "/media"), arrayForm(kind, links), msg)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (c *Client) deleteMedia(ctx context.Context, modID uint32, kind string, links []string) error {
	if err := validateLinks(links); err != nil {
		return err
	}
	return c.sendForm(ctx, http.MethodDelete, c.modPath(modID, "/media"), arrayForm(kind, links), nil)
}

// validateLinks makes sure that all links are absolute http(s) urls
func validateLinks(links []string) error {
	if len(links) == 0 {
		return ErrNoLinks
	}
	for _, link := range links {
		parsed, err := url.Parse(link)
		if err != nil || (parsed.Scheme != "https" && parsed.Scheme != "http") || parsed.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidLink, link)
		}
	}
	return nil
}

// EditModLogo uploads a new logo for a mod. The image is read from `image`
func (c *Client) EditModLogo(ctx context.Context, modID uint32, filename string, image io.Reader) (*Message, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("logo", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.modPath(modID, "/media"), nil, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	msg := &Message{}
	if err := c.send(req, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
