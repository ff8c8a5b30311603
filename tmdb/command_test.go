package tmdb

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandOmitsAbsentParameters(t *testing.T) {
	var missing *int
	cmd := NewCommand("search/movie").
		With("query", "alien").
		With("year", nil).
		With("page", missing).
		With("language", optString("")).
		With("vote_count.gte", optInt(0))

	assert.Equal(t, "query=alien", cmd.Query())
}

func TestCommandPreservesInsertionOrder(t *testing.T) {
	cmd := NewCommand("discover/movie").
		With("page", 2).
		With("include_adult", false).
		With("language", "en-US")

	assert.Equal(t, "page=2&include_adult=false&language=en-US", cmd.Query())
}

func TestCommandWithDoesNotMutateReceiver(t *testing.T) {
	base := NewCommand("movie/%d", 550)
	a := base.With("language", "fi")
	b := base.With("language", "sv")

	assert.Empty(t, base.Query())
	assert.Equal(t, "language=fi", a.Query())
	assert.Equal(t, "language=sv", b.Query())
	assert.Equal(t, "movie/550", base.Path())
}

func TestCommandFormatsDatesAndDecimals(t *testing.T) {
	date := time.Date(2020, time.March, 5, 23, 59, 0, 0, time.UTC)
	cmd := NewCommand("discover/movie").
		With("release_date.gte", date).
		With("vote_average.gte", 7.5).
		With("air_date", NewDate(2020, time.March, 5)).
		With("empty_date", Date{})

	assert.Equal(t, "release_date.gte=2020-03-05&vote_average.gte=7.5&air_date=2020-03-05", cmd.Query())
}

func TestCommandDereferencesPointers(t *testing.T) {
	page := 3
	adult := true
	cmd := NewCommand("search/tv").With("page", &page).With("include_adult", &adult)

	assert.Equal(t, "page=3&include_adult=true", cmd.Query())
}

func TestCommandValuesRoundTrip(t *testing.T) {
	values := []string{
		"the matrix",
		"amélie",
		"a&b=c",
		"50% off + more",
		"slash/and?question",
	}

	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			cmd := NewCommand("search/multi").With("query", v)
			rendered := cmd.Query()
			require.True(t, strings.HasPrefix(rendered, "query="))
			assert.NotContains(t, rendered, " ")

			decoded, err := url.QueryUnescape(strings.TrimPrefix(rendered, "query="))
			require.NoError(t, err)
			assert.Equal(t, v, decoded)

			parsed, err := url.ParseQuery(rendered)
			require.NoError(t, err)
			assert.Equal(t, v, parsed.Get("query"))
		})
	}
}

func TestCommandTarget(t *testing.T) {
	testCases := []struct {
		name     string
		cmd      Command
		apiKey   string
		expected string
	}{
		{
			name:     "key and params",
			cmd:      NewCommand("/movie/%d", 550).With("language", "en"),
			apiKey:   "secret",
			expected: "https://api.example/3/movie/550?api_key=secret&language=en",
		},
		{
			name:     "key only",
			cmd:      NewCommand("configuration"),
			apiKey:   "secret",
			expected: "https://api.example/3/configuration?api_key=secret",
		},
		{
			name:     "no key",
			cmd:      NewCommand("movie/popular").With("page", 2),
			expected: "https://api.example/3/movie/popular?page=2",
		},
		{
			name:     "nothing",
			cmd:      NewCommand("tv/latest"),
			expected: "https://api.example/3/tv/latest",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.cmd.target("https://api.example/3", tc.apiKey))
		})
	}
}

func TestJoinIDs(t *testing.T) {
	assert.Nil(t, joinIDs(nil))
	assert.Equal(t, "28,12", joinIDs([]int{28, 12}))
}
