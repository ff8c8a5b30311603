package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ExternalSource names an external database for Find.
type ExternalSource string

// External sources accepted by Find.
const (
	SourceImdb        ExternalSource = "imdb_id"
	SourceFreebase    ExternalSource = "freebase_id"
	SourceFreebaseMid ExternalSource = "freebase_mid"
	SourceTvdb        ExternalSource = "tvdb_id"
	SourceTvrage      ExternalSource = "tvrage_id"
)

// ExternalSources lists the sources accepted by Find.
var ExternalSources = []ExternalSource{SourceImdb, SourceFreebase, SourceFreebaseMid, SourceTvdb, SourceTvrage}

// ParseExternalSource accepts a source with or without its "_id" suffix.
func ParseExternalSource(s string) (ExternalSource, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, src := range ExternalSources {
		if s == string(src) || s+"_id" == string(src) {
			return src, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedSource, s)
}

// Search searches movies, shows and people with a single query. Each result
// is resolved by its media_type.
func (c *Client) Search(ctx context.Context, query string, opts *SearchOptions) (*Page[Resource], error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	cmd := NewCommand("search/multi").
		With("query", query).
		With("page", optInt(opts.Page)).
		With("include_adult", opts.IncludeAdult).
		With("language", optString(opts.Language)).
		With("search_type", searchType(opts.Autocomplete))

	raw, err := get[Page[json.RawMessage]](ctx, c, cmd)
	if err != nil {
		return nil, err
	}
	return &Page[Resource]{
		Results:    c.resolver.ResolveAll(raw.Results),
		PageIndex:  raw.PageIndex,
		PageCount:  raw.PageCount,
		TotalCount: raw.TotalCount,
	}, nil
}

type findResult struct {
	Movies   []json.RawMessage `json:"movie_results"`
	People   []json.RawMessage `json:"person_results"`
	Shows    []json.RawMessage `json:"tv_results"`
	Seasons  []json.RawMessage `json:"tv_season_results"`
	Episodes []json.RawMessage `json:"tv_episode_results"`
}

// FindAll looks up items by an id in an external database. Movies come
// first, then people, shows, seasons and episodes.
func (c *Client) FindAll(ctx context.Context, id string, source ExternalSource) ([]Resource, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidArgument)
	}
	known := false
	for _, src := range ExternalSources {
		if src == source {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, source)
	}

	found, err := get[findResult](ctx, c, NewCommand("find/%s", id).With("external_source", string(source)))
	if err != nil {
		return nil, err
	}

	var out []Resource
	out = append(out, c.resolver.resolveAs(MediaMovie, found.Movies)...)
	out = append(out, c.resolver.resolveAs(MediaPerson, found.People)...)
	out = append(out, c.resolver.resolveAs(MediaTV, found.Shows)...)
	out = append(out, c.resolver.resolveAs(MediaSeason, found.Seasons)...)
	out = append(out, c.resolver.resolveAs(MediaEpisode, found.Episodes)...)
	return out, nil
}

// Find returns the first item matching an external id, or nil when there
// is none.
func (c *Client) Find(ctx context.Context, id string, source ExternalSource) (*Resource, error) {
	all, err := c.FindAll(ctx, id, source)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return &all[0], nil
}
