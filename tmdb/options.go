package tmdb

import (
	"strconv"
	"strings"
	"time"
)

// PageOptions selects the language and page of a paged listing.
// Zero values are not sent.
type PageOptions struct {
	Language string
	Page     int
}

func (o *PageOptions) apply(cmd Command) Command {
	if o == nil {
		return cmd
	}
	return cmd.With("page", optInt(o.Page)).With("language", optString(o.Language))
}

// SearchOptions narrows a search.
type SearchOptions struct {
	Language     string
	IncludeAdult bool
	// Year filters movies by release year and shows by first air year.
	Year int
	// Autocomplete switches to prefix matching suited for type-ahead.
	Autocomplete bool
	Page         int
}

// MovieDiscoverOptions filters movie discovery.
type MovieDiscoverOptions struct {
	Language       string
	IncludeAdult   bool
	Year           int
	MinReleaseDate time.Time
	MaxReleaseDate time.Time
	MinVoteCount   int
	MinVoteAverage float64
	Genres         []int
	Companies      []int
	Page           int
}

// ShowDiscoverOptions filters TV discovery.
type ShowDiscoverOptions struct {
	Language        string
	Year            int
	MinFirstAirDate time.Time
	MaxFirstAirDate time.Time
	MinVoteCount    int
	MinVoteAverage  float64
	Genres          []int
	Networks        []int
	Page            int
}

// ChangesOptions selects a time window of the change feeds.
type ChangesOptions struct {
	Start time.Time
	End   time.Time
	Page  int
}

func (o *ChangesOptions) apply(cmd Command) Command {
	if o == nil {
		return cmd
	}
	return cmd.With("page", optInt(o.Page)).
		With("start_date", optDate(o.Start)).
		With("end_date", optDate(o.End))
}

// Catalog selects the movie, TV or combined variant of an endpoint.
type Catalog int

// Catalogs.
const (
	CatalogMovie Catalog = iota
	CatalogTV
	CatalogCombined
)

func (c Catalog) String() string {
	switch c {
	case CatalogMovie:
		return "movie"
	case CatalogTV:
		return "tv"
	case CatalogCombined:
		return "combined"
	}
	return "unknown"
}

// ParseCatalog parses "movie", "tv" or "combined".
func ParseCatalog(s string) (Catalog, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies":
		return CatalogMovie, true
	case "tv", "show", "shows":
		return CatalogTV, true
	case "combined", "all":
		return CatalogCombined, true
	}
	return CatalogMovie, false
}

// listPath returns "<prefix>/movie/list", "<prefix>/tv/list" or
// "<prefix>/list".
func (c Catalog) listPath(prefix string) string {
	switch c {
	case CatalogTV:
		return prefix + "/tv/list"
	case CatalogCombined:
		return prefix + "/list"
	default:
		return prefix + "/movie/list"
	}
}

// joinIDs renders identifiers as a comma separated list, or absent.
func joinIDs(ids []int) any {
	if len(ids) == 0 {
		return nil
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func searchType(autocomplete bool) any {
	if autocomplete {
		return "ngram"
	}
	return nil
}
