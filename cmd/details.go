package cmd

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lepinkainen/tmdbkit/internal/config"
	apperrors "github.com/lepinkainen/tmdbkit/internal/errors"
	"github.com/lepinkainen/tmdbkit/tmdb"
)

// fullFetchLimit caps the concurrent requests of movie --full.
const fullFetchLimit = 3

// MovieCmd represents the movie command
type MovieCmd struct {
	ID   int  `arg:"" help:"TMDB movie id"`
	Full bool `help:"Also fetch credits, images, videos and keywords"`
}

func (m *MovieCmd) Run(a *app) error {
	if err := requireCredentials(); err != nil {
		return err
	}

	movie, err := a.client.Movies.Get(a.ctx, m.ID, config.Language, false)
	if err != nil {
		return err
	}

	if m.Full {
		g, ctx := errgroup.WithContext(a.ctx)
		g.SetLimit(fullFetchLimit)
		g.Go(func() error {
			credits, err := a.client.Movies.GetCredits(ctx, m.ID)
			movie.Credits = credits
			return err
		})
		g.Go(func() error {
			images, err := a.client.Movies.GetImages(ctx, m.ID, "")
			movie.Images = images
			return err
		})
		g.Go(func() error {
			videos, err := a.client.Movies.GetVideos(ctx, m.ID, config.Language)
			movie.Videos = videos
			return err
		})
		g.Go(func() error {
			keywords, err := a.client.Movies.GetKeywords(ctx, m.ID)
			movie.Keywords = keywords
			return err
		})
		if err := g.Wait(); err != nil {
			return fmt.Errorf("movie %d: %w", m.ID, err)
		}
	}

	t := &table{header: []string{"FIELD", "VALUE"}}
	t.add("ID", movie.ID)
	t.add("Title", movie.Title)
	t.add("Released", movie.ReleaseDate)
	t.add("Runtime", fmt.Sprintf("%dm", movie.Runtime))
	t.add("Rating", fmt.Sprintf("%.1f (%d votes)", movie.VoteAverage, movie.VoteCount))
	t.add("Genres", genreNames(movie.Genres))
	if movie.Imdb != "" {
		t.add("IMDb", movie.Imdb)
	}
	if movie.Credits != nil {
		t.add("Cast", castNames(movie.Credits.Cast, 5))
	}
	return a.out.Print(movie, t)
}

// ShowCmd represents the show command
type ShowCmd struct {
	ID      int  `arg:"" help:"TMDB show id"`
	Season  int  `short:"s" help:"Season number" default:"-1"`
	Episode int  `short:"e" help:"Episode number, requires --season"`
	Full    bool `help:"Embed credits, images, videos and external ids"`
}

func (s *ShowCmd) Run(a *app) error {
	if err := requireCredentials(); err != nil {
		return err
	}

	switch {
	case s.Episode > 0 && s.Season < 0:
		return apperrors.NewConfigError("episode", "--episode requires --season")
	case s.Episode > 0:
		ep, err := a.client.Shows.GetEpisode(a.ctx, s.ID, s.Season, s.Episode, config.Language, s.Full)
		if err != nil {
			return err
		}
		t := &table{header: []string{"FIELD", "VALUE"}}
		t.add("Episode", fmt.Sprintf("S%02dE%02d", ep.SeasonNumber, ep.EpisodeNumber))
		t.add("Name", ep.Name)
		t.add("Aired", ep.AirDate)
		t.add("Rating", fmt.Sprintf("%.1f (%d votes)", ep.VoteAverage, ep.VoteCount))
		return a.out.Print(ep, t)
	case s.Season >= 0:
		season, err := a.client.Shows.GetSeason(a.ctx, s.ID, s.Season, config.Language, s.Full)
		if err != nil {
			return err
		}
		t := &table{header: []string{"EPISODE", "NAME", "AIRED"}}
		for _, ep := range season.Episodes {
			t.add(ep.EpisodeNumber, ep.Name, ep.AirDate)
		}
		return a.out.Print(season, t)
	}

	show, err := a.client.Shows.Get(a.ctx, s.ID, config.Language, s.Full)
	if err != nil {
		return err
	}
	t := &table{header: []string{"FIELD", "VALUE"}}
	t.add("ID", show.ID)
	t.add("Name", show.Name)
	t.add("First aired", show.FirstAirDate)
	t.add("Seasons", show.SeasonCount)
	t.add("Episodes", show.EpisodeCount)
	t.add("Rating", fmt.Sprintf("%.1f (%d votes)", show.VoteAverage, show.VoteCount))
	t.add("Genres", genreNames(show.Genres))
	return a.out.Print(show, t)
}

// PersonCmd represents the person command
type PersonCmd struct {
	ID      int    `arg:"" help:"TMDB person id"`
	Credits string `short:"c" help:"Print credits instead: movie, tv or combined"`
}

func (p *PersonCmd) Run(a *app) error {
	if err := requireCredentials(); err != nil {
		return err
	}

	if p.Credits != "" {
		catalog, ok := tmdb.ParseCatalog(p.Credits)
		if !ok {
			return apperrors.NewConfigError("credits", fmt.Sprintf("unknown catalog %q", p.Credits))
		}
		credits, err := a.client.People.GetCredits(a.ctx, p.ID, config.Language, catalog)
		if err != nil {
			return err
		}
		t := &table{header: []string{"KIND", "ID", "TITLE", "CHARACTER", "YEAR"}}
		for _, c := range credits.Cast {
			title, year := c.Title, c.ReleaseDate.Year()
			if title == "" {
				title, year = c.Name, c.FirstAirDate.Year()
			}
			t.add(c.MediaType, c.ID, title, c.Character, yearCell(year))
		}
		return a.out.Print(credits, t)
	}

	person, err := a.client.People.Get(a.ctx, p.ID, false)
	if err != nil {
		return err
	}
	t := &table{header: []string{"FIELD", "VALUE"}}
	t.add("ID", person.ID)
	t.add("Name", person.Name)
	t.add("Known for", person.Department)
	t.add("Born", person.BirthDay)
	if !person.DeathDay.IsZero() {
		t.add("Died", person.DeathDay)
	}
	t.add("Birthplace", person.BirthPlace)
	return a.out.Print(person, t)
}

// GenresCmd represents the genres command
type GenresCmd struct {
	Catalog string `arg:"" optional:"" help:"movie or tv" enum:"movie,tv" default:"movie"`
}

func (g *GenresCmd) Run(a *app) error {
	if err := requireCredentials(); err != nil {
		return err
	}
	catalog, _ := tmdb.ParseCatalog(g.Catalog)
	genres, err := a.client.Genres.Get(a.ctx, catalog)
	if err != nil {
		return err
	}
	t := &table{header: []string{"ID", "NAME"}}
	for _, genre := range genres {
		t.add(genre.ID, genre.Name)
	}
	return a.out.Print(genres, t)
}

func genreNames(genres []tmdb.Genre) string {
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}
	return strings.Join(names, ", ")
}

func castNames(cast []tmdb.MediaCast, limit int) string {
	if len(cast) > limit {
		cast = cast[:limit]
	}
	names := make([]string, len(cast))
	for i, c := range cast {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}
