package cmd

import (
	"fmt"

	"github.com/lepinkainen/tmdbkit/internal/config"
	apperrors "github.com/lepinkainen/tmdbkit/internal/errors"
	"github.com/lepinkainen/tmdbkit/internal/filter"
	"github.com/lepinkainen/tmdbkit/internal/tui"
	"github.com/lepinkainen/tmdbkit/tmdb"
)

var selectResource = tui.Select

// SearchCmd represents the search command
type SearchCmd struct {
	Query       string `arg:"" help:"Search query"`
	Kind        string `short:"k" help:"What to search: multi, movie, tv or person" enum:"multi,movie,tv,person" default:"multi"`
	Year        int    `short:"y" help:"Release or first air year"`
	Page        int    `short:"p" help:"Result page"`
	Adult       bool   `help:"Include adult results"`
	Filter      string `short:"f" help:"Filter expression, e.g. 'rating > 7 && year >= 2000'"`
	Interactive bool   `short:"i" help:"Pick one result in an interactive list"`
	MinVotes    int    `help:"Hide rated results with fewer votes in the interactive list" default:"100"`
}

func (s *SearchCmd) Run(a *app) error {
	if err := requireCredentials(); err != nil {
		return err
	}

	var flt *filter.Filter
	if s.Filter != "" {
		f, err := filter.Compile(s.Filter)
		if err != nil {
			return apperrors.NewConfigError("filter", err.Error())
		}
		flt = f
	}

	opts := &tmdb.SearchOptions{
		Language:     config.Language,
		IncludeAdult: s.Adult,
		Year:         s.Year,
		Page:         s.Page,
	}
	page, err := s.search(a, opts)
	if err != nil {
		return err
	}

	results, err := flt.Apply(page.Results)
	if err != nil {
		return err
	}
	a.logger.Debug("Search finished", "query", s.Query, "results", len(page.Results), "kept", len(results))

	if s.Interactive {
		sel, err := selectResource(s.Query, results, s.MinVotes)
		if err != nil {
			return err
		}
		switch sel.Action {
		case tui.ActionStopped:
			return apperrors.NewStopProcessingError("selection stopped")
		case tui.ActionSelected:
			return a.out.Print(sel.Selection, resourceTable([]tmdb.Resource{*sel.Selection}))
		}
		return nil
	}

	page.Results = results
	return a.out.Print(page, resourceTable(results))
}

func (s *SearchCmd) search(a *app, opts *tmdb.SearchOptions) (*tmdb.Page[tmdb.Resource], error) {
	switch s.Kind {
	case "movie":
		page, err := a.client.Movies.Search(a.ctx, s.Query, opts)
		if err != nil {
			return nil, err
		}
		return wrapPage(page, func(m *tmdb.Movie) tmdb.Resource {
			return tmdb.Resource{MediaType: tmdb.MediaMovie, Movie: m}
		}), nil
	case "tv":
		page, err := a.client.Shows.Search(a.ctx, s.Query, opts)
		if err != nil {
			return nil, err
		}
		return wrapPage(page, func(sh *tmdb.Show) tmdb.Resource {
			return tmdb.Resource{MediaType: tmdb.MediaTV, Show: sh}
		}), nil
	case "person":
		page, err := a.client.People.Search(a.ctx, s.Query, opts)
		if err != nil {
			return nil, err
		}
		return wrapPage(page, func(p *tmdb.Person) tmdb.Resource {
			return tmdb.Resource{MediaType: tmdb.MediaPerson, Person: p}
		}), nil
	}
	return a.client.Search(a.ctx, s.Query, opts)
}

func wrapPage[T any](page *tmdb.Page[T], wrap func(*T) tmdb.Resource) *tmdb.Page[tmdb.Resource] {
	out := &tmdb.Page[tmdb.Resource]{
		Results:    make([]tmdb.Resource, len(page.Results)),
		PageIndex:  page.PageIndex,
		PageCount:  page.PageCount,
		TotalCount: page.TotalCount,
	}
	for i := range page.Results {
		out.Results[i] = wrap(&page.Results[i])
	}
	return out
}

// DiscoverCmd represents the discover command
type DiscoverCmd struct {
	Catalog   string  `arg:"" optional:"" help:"movie or tv" enum:"movie,tv" default:"movie"`
	Year      int     `short:"y" help:"Release or first air year"`
	Genres    []int   `short:"g" help:"Genre ids"`
	MinVotes  int     `help:"Minimum vote count"`
	MinRating float64 `help:"Minimum vote average"`
	Page      int     `short:"p" help:"Result page"`
	Filter    string  `short:"f" help:"Filter expression"`
}

func (d *DiscoverCmd) Run(a *app) error {
	if err := requireCredentials(); err != nil {
		return err
	}

	var page *tmdb.Page[tmdb.Resource]
	if d.Catalog == "tv" {
		shows, err := a.client.Shows.Discover(a.ctx, &tmdb.ShowDiscoverOptions{
			Language:       config.Language,
			Year:           d.Year,
			MinVoteCount:   d.MinVotes,
			MinVoteAverage: d.MinRating,
			Genres:         d.Genres,
			Page:           d.Page,
		})
		if err != nil {
			return err
		}
		page = wrapPage(shows, func(sh *tmdb.Show) tmdb.Resource {
			return tmdb.Resource{MediaType: tmdb.MediaTV, Show: sh}
		})
	} else {
		movies, err := a.client.Movies.Discover(a.ctx, &tmdb.MovieDiscoverOptions{
			Language:       config.Language,
			Year:           d.Year,
			MinVoteCount:   d.MinVotes,
			MinVoteAverage: d.MinRating,
			Genres:         d.Genres,
			Page:           d.Page,
		})
		if err != nil {
			return err
		}
		page = wrapPage(movies, func(m *tmdb.Movie) tmdb.Resource {
			return tmdb.Resource{MediaType: tmdb.MediaMovie, Movie: m}
		})
	}

	if d.Filter != "" {
		f, err := filter.Compile(d.Filter)
		if err != nil {
			return apperrors.NewConfigError("filter", err.Error())
		}
		if page.Results, err = f.Apply(page.Results); err != nil {
			return err
		}
	}
	return a.out.Print(page, resourceTable(page.Results))
}

// FindCmd represents the find command
type FindCmd struct {
	ID     string `arg:"" help:"External id, e.g. tt0133093"`
	Source string `short:"s" help:"External source: imdb, freebase, freebase_mid, tvdb or tvrage" default:"imdb"`
	All    bool   `short:"a" help:"Print every match instead of the first"`
}

func (f *FindCmd) Run(a *app) error {
	if err := requireCredentials(); err != nil {
		return err
	}
	source, err := tmdb.ParseExternalSource(f.Source)
	if err != nil {
		return apperrors.NewConfigError("source", err.Error())
	}

	results, err := a.client.FindAll(a.ctx, f.ID, source)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no match for %s %s", source, f.ID)
	}
	if !f.All {
		results = results[:1]
	}
	return a.out.Print(results, resourceTable(results))
}
