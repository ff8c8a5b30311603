// Package filter selects search results with expr-lang expressions such as
//
//	kind == "movie" && year >= 1990 && rating > 7
//
// Variables: kind, id, title, year, rating, votes, popularity, language,
// adult, overview. Helpers: contains, startsWith, lower, upper.
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/lepinkainen/tmdbkit/tmdb"
)

// Filter is a compiled filter expression. It is safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
}

var helpers = map[string]any{
	"contains": func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	},
	"startsWith": func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	},
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
}

// Compile compiles an expression that must evaluate to a boolean.
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression, expr.Env(env(tmdb.Resource{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}
	return &Filter{expression: expression, program: program}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expression
}

// Match reports whether a resource satisfies the filter.
func (f *Filter) Match(r tmdb.Resource) (bool, error) {
	out, err := expr.Run(f.program, env(r))
	if err != nil {
		return false, fmt.Errorf("evaluate filter %q: %w", f.expression, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Apply returns the resources that satisfy the filter, keeping their order.
// A nil filter keeps everything.
func (f *Filter) Apply(results []tmdb.Resource) ([]tmdb.Resource, error) {
	if f == nil {
		return results, nil
	}
	out := make([]tmdb.Resource, 0, len(results))
	for _, r := range results {
		ok, err := f.Match(r)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func env(r tmdb.Resource) map[string]any {
	e := map[string]any{
		"kind":       string(r.MediaType),
		"id":         r.ID(),
		"title":      r.Title(),
		"year":       r.Year(),
		"rating":     0.0,
		"votes":      0,
		"popularity": 0.0,
		"language":   "",
		"adult":      false,
		"overview":   "",
	}
	switch {
	case r.Movie != nil:
		m := r.Movie
		e["rating"], e["votes"], e["popularity"] = m.VoteAverage, m.VoteCount, m.Popularity
		e["language"], e["adult"], e["overview"] = m.OriginalLanguage, m.Adult, m.Overview
	case r.Show != nil:
		s := r.Show
		e["rating"], e["votes"], e["popularity"] = s.VoteAverage, s.VoteCount, s.Popularity
		e["language"], e["overview"] = s.OriginalLanguage, s.Overview
	case r.Person != nil:
		e["popularity"], e["adult"], e["overview"] = r.Person.Popularity, r.Person.Adult, r.Person.Biography
	case r.Season != nil:
		e["overview"] = r.Season.Overview
	case r.Episode != nil:
		e["rating"], e["votes"], e["overview"] = r.Episode.VoteAverage, r.Episode.VoteCount, r.Episode.Overview
	}
	for k, v := range helpers {
		e[k] = v
	}
	return e
}
