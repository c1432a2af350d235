package pagination

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// ErrInvalidParams is returned for a page below 1 or a negative page size
var ErrInvalidParams = errors.New("invalid pagination parameters")

// Params selects one page of a listing. A PageSize of 0 returns everything.
type Params struct {
	Page     int
	PageSize int
}

type Meta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Page returns the items of the requested page along with the paging metadata.
// A page past the end is empty.
func Page[T any](items []T, p Params) ([]T, Meta) {
	page := max(p.Page, 1)

	meta := Meta{
		Page:       page,
		PageSize:   p.PageSize,
		TotalItems: len(items),
	}

	if p.PageSize <= 0 {
		meta.PageSize = 0
		if len(items) > 0 {
			meta.TotalPages = 1
		}
		return items, meta
	}

	meta.TotalPages = (len(items) + p.PageSize - 1) / p.PageSize

	start := (page - 1) * p.PageSize
	if start >= len(items) {
		return []T{}, meta
	}
	end := min(start+p.PageSize, len(items))

	return items[start:end], meta
}

// FromQuery reads the page and pageSize query parameters. Absent values select the whole listing.
func FromQuery(q url.Values) (Params, error) {
	page, err := queryInt(q, "page", 1, 1)
	if err != nil {
		return Params{}, err
	}

	size, err := queryInt(q, "pageSize", 0, 0)
	if err != nil {
		return Params{}, err
	}

	return Params{Page: page, PageSize: size}, nil
}

func queryInt(q url.Values, key string, fallback, least int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < least {
		return 0, fmt.Errorf("%w: %s must be an integer of at least %d, got %q", ErrInvalidParams, key, least, raw)
	}

	return n, nil
}
