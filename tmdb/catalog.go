package tmdb

import (
	"context"
)

// CollectionService covers the collection endpoints.
type CollectionService service

// Get returns a collection with its parts.
func (s *CollectionService) Get(ctx context.Context, id int, language string) (*Collection, error) {
	return get[Collection](ctx, s.client, NewCommand("collection/%d", id).With("language", optString(language)))
}

// GetImages returns the artwork of a collection.
func (s *CollectionService) GetImages(ctx context.Context, id int, language string) (*Images, error) {
	return get[Images](ctx, s.client, NewCommand("collection/%d/images", id).With("language", optString(language)))
}

// Search finds collections by name.
func (s *CollectionService) Search(ctx context.Context, query string, opts *PageOptions) (*Page[Collection], error) {
	return get[Page[Collection]](ctx, s.client, opts.apply(NewCommand("search/collection").With("query", query)))
}

// CompanyService covers the company endpoints.
type CompanyService service

// Get returns a production company.
func (s *CompanyService) Get(ctx context.Context, id int) (*Company, error) {
	return get[Company](ctx, s.client, NewCommand("company/%d", id))
}

// GetMovies returns the movies of a company.
func (s *CompanyService) GetMovies(ctx context.Context, id int, opts *PageOptions) (*Page[Movie], error) {
	return get[Page[Movie]](ctx, s.client, opts.apply(NewCommand("company/%d/movies", id)))
}

// Search finds companies by name.
func (s *CompanyService) Search(ctx context.Context, query string, page int) (*Page[Company], error) {
	cmd := NewCommand("search/company").With("query", query).With("page", optInt(page))
	return get[Page[Company]](ctx, s.client, cmd)
}

// GenreService covers the genre endpoints.
type GenreService service

// Get returns the genres of a catalog.
func (s *GenreService) Get(ctx context.Context, catalog Catalog) ([]Genre, error) {
	genres, err := get[Genres](ctx, s.client, NewCommand(catalog.listPath("genre")))
	if err != nil {
		return nil, err
	}
	return genres.Results, nil
}

// GetMovies returns the movies of a genre.
func (s *GenreService) GetMovies(ctx context.Context, id int, includeAdult bool, opts *PageOptions) (*Page[Movie], error) {
	cmd := NewCommand("genre/%d/movies", id)
	if opts != nil {
		cmd = cmd.With("page", optInt(opts.Page))
	}
	cmd = cmd.With("include_adult", includeAdult)
	if opts != nil {
		cmd = cmd.With("language", optString(opts.Language))
	}
	return get[Page[Movie]](ctx, s.client, cmd)
}

// ReviewService covers the review endpoints.
type ReviewService service

// Get returns a review.
func (s *ReviewService) Get(ctx context.Context, id string) (*Review, error) {
	if id == "" {
		return nil, ErrInvalidArgument
	}
	return get[Review](ctx, s.client, NewCommand("review/%s", id))
}
