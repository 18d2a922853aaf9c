package modio

import (
	"net/url"
	"strconv"
	"strings"
)

// ModsQuery filters, sorts and paginates mod listings.
// Zero values are not sent
type ModsQuery struct {
	// Limit is the maximum number of results (max 100)
	Limit int
	// Offset is the number of results to skip
	Offset int
	// Sort is a field name to sort by. Prefix with "-" for descending order (eg. "-date_live")
	Sort string
	// Search is a full text search across the name and summary
	Search string
	// Name matches the exact mod name
	Name string
	// Tags matches mods that have any of the given tags
	Tags []string
	// IDs matches mods with any of the given ids
	IDs []uint32
	// SubmittedBy matches mods submitted by the given user id
	SubmittedBy uint32
}

// Values returns the query as url values
func (q *ModsQuery) Values() (url.Values, error) {
	values := url.Values{}
	if q == nil {
		return values, nil
	}
	if q.Limit < 0 || q.Limit > 100 || q.Offset < 0 {
		return nil, ErrInvalidLimit
	}

	if q.Limit != 0 {
		values.Set("_limit", strconv.Itoa(q.Limit))
	}
	if q.Offset != 0 {
		values.Set("_offset", strconv.Itoa(q.Offset))
	}
	if q.Sort != "" {
		values.Set("_sort", q.Sort)
	}
	if q.Search != "" {
		values.Set("_q", q.Search)
	}
	if q.Name != "" {
		values.Set("name", q.Name)
	}
	if len(q.Tags) != 0 {
		values.Set("tags-in", strings.Join(q.Tags, ","))
	}
	if len(q.IDs) != 0 {
		ids := make([]string, len(q.IDs))
		for i, id := range q.IDs {
			ids[i] = strconv.FormatUint(uint64(id), 10)
		}
		values.Set("id-in", strings.Join(ids, ","))
	}
	if q.SubmittedBy != 0 {
		values.Set("submitted_by", strconv.FormatUint(uint64(q.SubmittedBy), 10))
	}
	return values, nil
}

// EditModRequest contains the fields of a mod that should be changed.
// Empty strings and nil pointers are left untouched
type EditModRequest struct {
	Status         *int
	Visible        *bool
	Name           string
	NameID         string
	Summary        string
	Description    string
	HomepageURL    string
	MaturityOption *int
	MetadataBlob   string
}

func (r *EditModRequest) form() url.Values {
	form := url.Values{}
	if r.Status != nil {
		form.Set("status", strconv.Itoa(*r.Status))
	}
	if r.Visible != nil {
		visible := "0"
		if *r.Visible {
			visible = "1"
		}
		form.Set("visible", visible)
	}
	set := func(key string, value string) {
		if value != "" {
			form.Set(key, value)
		}
	}
	set("name", r.Name)
	set("name_id", r.NameID)
	set("summary", r.Summary)
	set("description", r.Description)
	set("homepage_url", r.HomepageURL)
	set("metadata_blob", r.MetadataBlob)
	if r.MaturityOption != nil {
		form.Set("maturity_option", strconv.Itoa(*r.MaturityOption))
	}
	return form
}

// arrayForm builds a form with `key[]` set to all values
func arrayForm(key string, values []string) url.Values {
	form := url.Values{}
	for _, v := range values {
		form.Add(key+"[]", v)
	}
	return form
}
