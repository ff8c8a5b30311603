package tmdb

import (
	"context"
	"fmt"
	"net/http"
)

const showAppends = "credits,images,videos,keywords,translations,external_ids"

// NoSeason addresses a whole show in the methods that also accept a season
// and episode number. Season 0 holds the specials.
const NoSeason = -1

// ShowService covers the TV endpoints.
type ShowService service

// Search finds shows by name.
func (s *ShowService) Search(ctx context.Context, query string, opts *SearchOptions) (*Page[Show], error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	cmd := NewCommand("search/tv").
		With("query", query).
		With("page", optInt(opts.Page)).
		With("language", optString(opts.Language)).
		With("first_air_date_year", optInt(opts.Year)).
		With("search_type", searchType(opts.Autocomplete))
	return get[Page[Show]](ctx, s.client, cmd)
}

// Discover lists shows matching the filters.
func (s *ShowService) Discover(ctx context.Context, opts *ShowDiscoverOptions) (*Page[Show], error) {
	if opts == nil {
		opts = &ShowDiscoverOptions{}
	}
	cmd := NewCommand("discover/tv").
		With("page", optInt(opts.Page)).
		With("language", optString(opts.Language)).
		With("first_air_date_year", optInt(opts.Year)).
		With("first_air_date.gte", optDate(opts.MinFirstAirDate)).
		With("first_air_date.lte", optDate(opts.MaxFirstAirDate)).
		With("vote_count.gte", optInt(opts.MinVoteCount)).
		With("vote_average.gte", optDecimal(opts.MinVoteAverage)).
		With("with_genres", joinIDs(opts.Genres)).
		With("with_networks", joinIDs(opts.Networks))
	return get[Page[Show]](ctx, s.client, cmd)
}

// Get returns a show, optionally with its related data embedded.
func (s *ShowService) Get(ctx context.Context, id int, language string, appendAll bool) (*Show, error) {
	cmd := NewCommand("tv/%d", id).With("language", optString(language))
	if appendAll {
		cmd = cmd.With("append_to_response", showAppends)
	}
	return get[Show](ctx, s.client, cmd)
}

// GetLatest returns the most recently added show.
func (s *ShowService) GetLatest(ctx context.Context) (*Show, error) {
	return get[Show](ctx, s.client, NewCommand("tv/latest"))
}

// GetSeason returns one season of a show including its episodes.
func (s *ShowService) GetSeason(ctx context.Context, id, season int, language string, appendAll bool) (*Season, error) {
	cmd := NewCommand("tv/%d/season/%d", id, season).With("language", optString(language))
	if appendAll {
		cmd = cmd.With("append_to_response", "credits,images,videos,external_ids")
	}
	return get[Season](ctx, s.client, cmd)
}

// GetEpisode returns one episode of a show.
func (s *ShowService) GetEpisode(ctx context.Context, id, season, episode int, language string, appendAll bool) (*Episode, error) {
	cmd := NewCommand("tv/%d/season/%d/episode/%d", id, season, episode).With("language", optString(language))
	if appendAll {
		cmd = cmd.With("append_to_response", "credits,images,videos,external_ids")
	}
	return get[Episode](ctx, s.client, cmd)
}

// GetIDs returns the external ids of a show, season or episode. Pass
// NoSeason to address the show and an episode of 0 to address the season.
func (s *ShowService) GetIDs(ctx context.Context, id, season, episode int) (*ExternalIDs, error) {
	return get[ExternalIDs](ctx, s.client, NewCommand("%s/external_ids", showPath(id, season, episode)))
}

// GetCredits returns the cast and crew of a show, season or episode.
func (s *ShowService) GetCredits(ctx context.Context, id, season, episode int) (*MediaCredits, error) {
	return get[MediaCredits](ctx, s.client, NewCommand("%s/credits", showPath(id, season, episode)))
}

// GetImages returns the artwork of a show, season or episode.
func (s *ShowService) GetImages(ctx context.Context, id, season, episode int, language string) (*Images, error) {
	cmd := NewCommand("%s/images", showPath(id, season, episode)).With("language", optString(language))
	return get[Images](ctx, s.client, cmd)
}

// GetVideos returns the videos of a show, season or episode.
func (s *ShowService) GetVideos(ctx context.Context, id, season, episode int, language string) (*Videos, error) {
	cmd := NewCommand("%s/videos", showPath(id, season, episode)).With("language", optString(language))
	return get[Videos](ctx, s.client, cmd)
}

// GetSimilar returns shows similar to the given one.
func (s *ShowService) GetSimilar(ctx context.Context, id int, opts *PageOptions) (*Page[Show], error) {
	return get[Page[Show]](ctx, s.client, opts.apply(NewCommand("tv/%d/similar", id)))
}

// GetTranslations returns the translations of a show.
func (s *ShowService) GetTranslations(ctx context.Context, id int) (*Translations, error) {
	return get[Translations](ctx, s.client, NewCommand("tv/%d/translations", id))
}

// GetOnAir returns shows with an episode airing in the next seven days.
func (s *ShowService) GetOnAir(ctx context.Context, opts *PageOptions) (*Page[Show], error) {
	return get[Page[Show]](ctx, s.client, opts.apply(NewCommand("tv/on_the_air")))
}

// GetAiring returns shows airing today in the given time zone.
func (s *ShowService) GetAiring(ctx context.Context, timezone string, opts *PageOptions) (*Page[Show], error) {
	cmd := opts.apply(NewCommand("tv/airing_today")).With("timezone", optString(timezone))
	return get[Page[Show]](ctx, s.client, cmd)
}

// GetPopular returns the current popular shows.
func (s *ShowService) GetPopular(ctx context.Context, opts *PageOptions) (*Page[Show], error) {
	return get[Page[Show]](ctx, s.client, opts.apply(NewCommand("tv/popular")))
}

// GetTopRated returns the top rated shows.
func (s *ShowService) GetTopRated(ctx context.Context, opts *PageOptions) (*Page[Show], error) {
	return get[Page[Show]](ctx, s.client, opts.apply(NewCommand("tv/top_rated")))
}

// GetChanges returns the shows changed in a time window.
func (s *ShowService) GetChanges(ctx context.Context, opts *ChangesOptions) (*Page[ChangedListItem], error) {
	return get[Page[ChangedListItem]](ctx, s.client, opts.apply(NewCommand("tv/changes")))
}

// GetNetwork returns a TV network.
func (s *ShowService) GetNetwork(ctx context.Context, id int) (*Network, error) {
	return get[Network](ctx, s.client, NewCommand("network/%d", id))
}

// GetAccountRated returns the shows rated by an account.
func (s *ShowService) GetAccountRated(ctx context.Context, session string, accountID int, opts *PageOptions) (*Page[Show], error) {
	return accountList[Show](ctx, s.client, session, accountID, "rated/tv", opts)
}

// GetFavorited returns the favorite shows of an account.
func (s *ShowService) GetFavorited(ctx context.Context, session string, accountID int, opts *PageOptions) (*Page[Show], error) {
	return accountList[Show](ctx, s.client, session, accountID, "favorite/tv", opts)
}

// GetWatchlist returns the TV watchlist of an account.
func (s *ShowService) GetWatchlist(ctx context.Context, session string, accountID int, opts *PageOptions) (*Page[Show], error) {
	return accountList[Show](ctx, s.client, session, accountID, "watchlist/tv", opts)
}

// SetRating rates a show.
func (s *ShowService) SetRating(ctx context.Context, session string, id int, value float64) (bool, error) {
	if session == "" {
		return false, ErrInvalidArgument
	}
	cmd := NewCommand("tv/%d/rating", id).With("session_id", session)
	return send(ctx, s.client, http.MethodPost, cmd, ratingBody{Value: value})
}

// SetEpisodeRating rates an episode.
func (s *ShowService) SetEpisodeRating(ctx context.Context, session string, id, season, episode int, value float64) (bool, error) {
	if session == "" {
		return false, ErrInvalidArgument
	}
	cmd := NewCommand("tv/%d/season/%d/episode/%d/rating", id, season, episode).With("session_id", session)
	return send(ctx, s.client, http.MethodPost, cmd, ratingBody{Value: value})
}

// SetFavorite adds a show to or removes it from the account favorites.
func (s *ShowService) SetFavorite(ctx context.Context, session string, accountID, id int, favorite bool) (bool, error) {
	return setAccountFlag(ctx, s.client, session, accountID, "favorite", accountFlagBody{
		MediaType: MediaTV, MediaID: id, Favorite: &favorite,
	})
}

// SetWatchlist adds a show to or removes it from the account watchlist.
func (s *ShowService) SetWatchlist(ctx context.Context, session string, accountID, id int, watchlist bool) (bool, error) {
	return setAccountFlag(ctx, s.client, session, accountID, "watchlist", accountFlagBody{
		MediaType: MediaTV, MediaID: id, Watchlist: &watchlist,
	})
}

func showPath(id, season, episode int) string {
	switch {
	case season < 0:
		return fmt.Sprintf("tv/%d", id)
	case episode <= 0:
		return fmt.Sprintf("tv/%d/season/%d", id, season)
	default:
		return fmt.Sprintf("tv/%d/season/%d/episode/%d", id, season, episode)
	}
}
