package tmdb

import (
	"context"
	"net/http"
)

// movieAppends is requested by MovieService.Get with appendAll.
const movieAppends = "alternative_titles,images,credits,keywords,releases,videos,translations,reviews,external_ids"

// MovieService covers the movie endpoints.
type MovieService service

// Search finds movies by title.
func (s *MovieService) Search(ctx context.Context, query string, opts *SearchOptions) (*Page[Movie], error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	cmd := NewCommand("search/movie").
		With("query", query).
		With("page", optInt(opts.Page)).
		With("include_adult", opts.IncludeAdult).
		With("language", optString(opts.Language)).
		With("year", optInt(opts.Year)).
		With("search_type", searchType(opts.Autocomplete))
	return get[Page[Movie]](ctx, s.client, cmd)
}

// Discover lists movies matching the filters.
func (s *MovieService) Discover(ctx context.Context, opts *MovieDiscoverOptions) (*Page[Movie], error) {
	if opts == nil {
		opts = &MovieDiscoverOptions{}
	}
	cmd := NewCommand("discover/movie").
		With("page", optInt(opts.Page)).
		With("include_adult", opts.IncludeAdult).
		With("language", optString(opts.Language)).
		With("year", optInt(opts.Year)).
		With("release_date.gte", optDate(opts.MinReleaseDate)).
		With("release_date.lte", optDate(opts.MaxReleaseDate)).
		With("vote_count.gte", optInt(opts.MinVoteCount)).
		With("vote_average.gte", optDecimal(opts.MinVoteAverage)).
		With("with_genres", joinIDs(opts.Genres)).
		With("with_companies", joinIDs(opts.Companies))
	return get[Page[Movie]](ctx, s.client, cmd)
}

// Get returns a movie. With appendAll the related credits, images, videos,
// keywords, releases, translations, reviews and external ids are embedded.
func (s *MovieService) Get(ctx context.Context, id int, language string, appendAll bool) (*Movie, error) {
	cmd := NewCommand("movie/%d", id).With("language", optString(language))
	if appendAll {
		cmd = cmd.With("append_to_response", movieAppends)
	}
	return get[Movie](ctx, s.client, cmd)
}

// GetImages returns the posters and backdrops of a movie.
func (s *MovieService) GetImages(ctx context.Context, id int, language string) (*Images, error) {
	return get[Images](ctx, s.client, NewCommand("movie/%d/images", id).With("language", optString(language)))
}

// GetCredits returns the cast and crew of a movie.
func (s *MovieService) GetCredits(ctx context.Context, id int) (*MediaCredits, error) {
	return get[MediaCredits](ctx, s.client, NewCommand("movie/%d/credits", id))
}

// GetVideos returns the trailers and clips of a movie.
func (s *MovieService) GetVideos(ctx context.Context, id int, language string) (*Videos, error) {
	return get[Videos](ctx, s.client, NewCommand("movie/%d/videos", id).With("language", optString(language)))
}

// GetReviews returns user reviews of a movie.
func (s *MovieService) GetReviews(ctx context.Context, id int, opts *PageOptions) (*Page[Review], error) {
	return get[Page[Review]](ctx, s.client, opts.apply(NewCommand("movie/%d/reviews", id)))
}

// GetLists returns the lists a movie belongs to.
func (s *MovieService) GetLists(ctx context.Context, id int, opts *PageOptions) (*Page[List], error) {
	return get[Page[List]](ctx, s.client, opts.apply(NewCommand("movie/%d/lists", id)))
}

// GetSimilar returns movies similar to the given one.
func (s *MovieService) GetSimilar(ctx context.Context, id int, opts *PageOptions) (*Page[Movie], error) {
	return get[Page[Movie]](ctx, s.client, opts.apply(NewCommand("movie/%d/similar_movies", id)))
}

// GetGuestRated returns the movies rated in a guest session.
func (s *MovieService) GetGuestRated(ctx context.Context, guestSession string, opts *PageOptions) (*Page[Movie], error) {
	if guestSession == "" {
		return nil, ErrInvalidArgument
	}
	return get[Page[Movie]](ctx, s.client, opts.apply(NewCommand("guest_session/%s/rated_movies", guestSession)))
}

// GetPopular returns the current popular movies.
func (s *MovieService) GetPopular(ctx context.Context, opts *PageOptions) (*Page[Movie], error) {
	return get[Page[Movie]](ctx, s.client, opts.apply(NewCommand("movie/popular")))
}

// GetTopRated returns the top rated movies.
func (s *MovieService) GetTopRated(ctx context.Context, opts *PageOptions) (*Page[Movie], error) {
	return get[Page[Movie]](ctx, s.client, opts.apply(NewCommand("movie/top_rated")))
}

// GetNowPlaying returns the movies in theatres.
func (s *MovieService) GetNowPlaying(ctx context.Context, opts *PageOptions) (*Page[Movie], error) {
	return get[Page[Movie]](ctx, s.client, opts.apply(NewCommand("movie/now_playing")))
}

// GetUpcoming returns the upcoming movies.
func (s *MovieService) GetUpcoming(ctx context.Context, opts *PageOptions) (*Page[Movie], error) {
	return get[Page[Movie]](ctx, s.client, opts.apply(NewCommand("movie/upcoming")))
}

// GetAlternativeTitles returns the titles of a movie in other countries.
// An empty country returns all of them.
func (s *MovieService) GetAlternativeTitles(ctx context.Context, id int, country string) (*AlternativeTitles, error) {
	return get[AlternativeTitles](ctx, s.client,
		NewCommand("movie/%d/alternative_titles", id).With("country", optString(country)))
}

// GetKeywords returns the keywords of a movie.
func (s *MovieService) GetKeywords(ctx context.Context, id int) (*Keywords, error) {
	return get[Keywords](ctx, s.client, NewCommand("movie/%d/keywords", id))
}

// GetReleases returns the per-country releases of a movie.
func (s *MovieService) GetReleases(ctx context.Context, id int) (*Releases, error) {
	return get[Releases](ctx, s.client, NewCommand("movie/%d/releases", id))
}

// GetTranslations returns the translations of a movie.
func (s *MovieService) GetTranslations(ctx context.Context, id int) (*Translations, error) {
	return get[Translations](ctx, s.client, NewCommand("movie/%d/translations", id))
}

// GetChanges returns the movies changed in a time window.
func (s *MovieService) GetChanges(ctx context.Context, opts *ChangesOptions) (*Page[ChangedListItem], error) {
	return get[Page[ChangedListItem]](ctx, s.client, opts.apply(NewCommand("movie/changes")))
}

// GetAccountRated returns the movies rated by an account.
func (s *MovieService) GetAccountRated(ctx context.Context, session string, accountID int, opts *PageOptions) (*Page[Movie], error) {
	return accountList[Movie](ctx, s.client, session, accountID, "rated/movies", opts)
}

// GetFavorited returns the favorite movies of an account.
func (s *MovieService) GetFavorited(ctx context.Context, session string, accountID int, opts *PageOptions) (*Page[Movie], error) {
	return accountList[Movie](ctx, s.client, session, accountID, "favorite/movies", opts)
}

// GetWatchlist returns the movie watchlist of an account.
func (s *MovieService) GetWatchlist(ctx context.Context, session string, accountID int, opts *PageOptions) (*Page[Movie], error) {
	return accountList[Movie](ctx, s.client, session, accountID, "watchlist/movies", opts)
}

// SetRating rates a movie.
func (s *MovieService) SetRating(ctx context.Context, session string, id int, value float64) (bool, error) {
	if session == "" {
		return false, ErrInvalidArgument
	}
	cmd := NewCommand("movie/%d/rating", id).With("session_id", session)
	return send(ctx, s.client, http.MethodPost, cmd, ratingBody{Value: value})
}

// SetFavorite adds a movie to or removes it from the account favorites.
func (s *MovieService) SetFavorite(ctx context.Context, session string, accountID, id int, favorite bool) (bool, error) {
	return setAccountFlag(ctx, s.client, session, accountID, "favorite", accountFlagBody{
		MediaType: MediaMovie, MediaID: id, Favorite: &favorite,
	})
}

// SetWatchlist adds a movie to or removes it from the account watchlist.
func (s *MovieService) SetWatchlist(ctx context.Context, session string, accountID, id int, watchlist bool) (bool, error) {
	return setAccountFlag(ctx, s.client, session, accountID, "watchlist", accountFlagBody{
		MediaType: MediaMovie, MediaID: id, Watchlist: &watchlist,
	})
}

type ratingBody struct {
	Value float64 `json:"value"`
}

type accountFlagBody struct {
	MediaType MediaType `json:"media_type"`
	MediaID   int       `json:"media_id"`
	Favorite  *bool     `json:"favorite,omitempty"`
	Watchlist *bool     `json:"watchlist,omitempty"`
}

func accountList[T any](ctx context.Context, c *Client, session string, accountID int, kind string, opts *PageOptions) (*Page[T], error) {
	if session == "" {
		return nil, ErrInvalidArgument
	}
	cmd := NewCommand("account/%d/%s", accountID, kind).With("session_id", session)
	return get[Page[T]](ctx, c, opts.apply(cmd))
}

func setAccountFlag(ctx context.Context, c *Client, session string, accountID int, kind string, body accountFlagBody) (bool, error) {
	if session == "" {
		return false, ErrInvalidArgument
	}
	cmd := NewCommand("account/%d/%s", accountID, kind).With("session_id", session)
	return send(ctx, c, http.MethodPost, cmd, body)
}
