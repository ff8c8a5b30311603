package tmdb

import (
	"context"
	"fmt"
)

// PersonService covers the people endpoints.
type PersonService service

// Get returns a person, optionally with images and external ids embedded.
func (s *PersonService) Get(ctx context.Context, id int, appendAll bool) (*Person, error) {
	cmd := NewCommand("person/%d", id)
	if appendAll {
		cmd = cmd.With("append_to_response", "images,external_ids")
	}
	return get[Person](ctx, s.client, cmd)
}

// GetCredits returns the movie, TV or combined credits of a person.
func (s *PersonService) GetCredits(ctx context.Context, id int, language string, catalog Catalog) (*PersonCredits, error) {
	var kind string
	switch catalog {
	case CatalogMovie:
		kind = "movie_credits"
	case CatalogTV:
		kind = "tv_credits"
	case CatalogCombined:
		kind = "combined_credits"
	default:
		return nil, fmt.Errorf("%w: catalog %d", ErrInvalidArgument, catalog)
	}
	cmd := NewCommand("person/%d/%s", id, kind).With("language", optString(language))
	return get[PersonCredits](ctx, s.client, cmd)
}

// GetImages returns the profile images of a person.
func (s *PersonService) GetImages(ctx context.Context, id int) ([]Image, error) {
	images, err := get[PersonImages](ctx, s.client, NewCommand("person/%d/images", id))
	if err != nil {
		return nil, err
	}
	return images.Results, nil
}

// GetIDs returns the external ids of a person.
func (s *PersonService) GetIDs(ctx context.Context, id int) (*ExternalIDs, error) {
	return get[ExternalIDs](ctx, s.client, NewCommand("person/%d/external_ids", id))
}

// Search finds people by name.
func (s *PersonService) Search(ctx context.Context, query string, opts *SearchOptions) (*Page[Person], error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	cmd := NewCommand("search/person").
		With("query", query).
		With("page", optInt(opts.Page)).
		With("include_adult", opts.IncludeAdult).
		With("search_type", searchType(opts.Autocomplete))
	return get[Page[Person]](ctx, s.client, cmd)
}

// GetChanges returns the people changed in a time window.
func (s *PersonService) GetChanges(ctx context.Context, opts *ChangesOptions) (*Page[ChangedListItem], error) {
	return get[Page[ChangedListItem]](ctx, s.client, opts.apply(NewCommand("person/changes")))
}
