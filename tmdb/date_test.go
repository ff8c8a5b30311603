package tmdb

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDateUnmarshal(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected Date
	}{
		{name: "date", input: `"2020-03-05"`, expected: NewDate(2020, time.March, 5)},
		{name: "timestamp", input: `"2020-03-05T10:00:00.000Z"`, expected: Date{time.Date(2020, time.March, 5, 10, 0, 0, 0, time.UTC)}},
		{name: "empty", input: `""`},
		{name: "null", input: `null`},
		{name: "garbage", input: `"someday"`},
		{name: "number", input: `20200305`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tc.input), &d))
			assert.True(t, tc.expected.Equal(d.Time), "got %v", d)
		})
	}
}

func TestDateMarshal(t *testing.T) {
	data, err := json.Marshal(NewDate(2020, time.March, 5))
	require.NoError(t, err)
	assert.Equal(t, `"2020-03-05"`, string(data))

	data, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, `""`, string(data))

	out, err := yaml.Marshal(struct {
		Released Date `yaml:"released"`
	}{NewDate(1999, time.October, 15)})
	require.NoError(t, err)
	assert.Equal(t, "released: \"1999-10-15\"\n", string(out))
}

func TestDateString(t *testing.T) {
	assert.Equal(t, "", Date{}.String())
	assert.Equal(t, 0, Date{}.Year())
	assert.Equal(t, "2001-09-11", NewDate(2001, time.September, 11).String())
}
