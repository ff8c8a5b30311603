package tmdb

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

type param struct {
	key   string
	value any
}

// Command describes one API call before it is sent: a path relative to the
// API base and an ordered list of query parameters.
//
// Commands are values. With returns a new Command and never modifies the
// receiver, so a Command can be shared between goroutines.
type Command struct {
	path   string
	params []param
}

// NewCommand creates a Command for the given path. The path is formatted with
// fmt.Sprintf when args are given.
func NewCommand(path string, args ...any) Command {
	if len(args) > 0 {
		path = fmt.Sprintf(path, args...)
	}
	return Command{path: strings.TrimPrefix(path, "/")}
}

// With returns a copy of the command with an additional parameter.
// A nil value or a nil pointer marks the parameter as absent; absent
// parameters are not rendered.
func (c Command) With(key string, value any) Command {
	params := make([]param, len(c.params), len(c.params)+1)
	copy(params, c.params)
	c.params = append(params, param{key: key, value: value})
	return c
}

// Path returns the command path.
func (c Command) Path() string {
	return c.path
}

// Query renders the present parameters in insertion order.
func (c Command) Query() string {
	var sb strings.Builder
	for _, p := range c.params {
		value, ok := formatValue(p.value)
		if !ok {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(p.key)
		sb.WriteByte('=')
		sb.WriteString(value)
	}
	return sb.String()
}

// target renders the full request URL. The API key goes first so that the
// remaining parameters keep their insertion order.
func (c Command) target(baseURL, apiKey string) string {
	var sb strings.Builder
	sb.WriteString(baseURL)
	sb.WriteByte('/')
	sb.WriteString(c.path)

	query := c.Query()
	if apiKey != "" {
		sb.WriteString("?api_key=")
		sb.WriteString(escape(apiKey))
		if query != "" {
			sb.WriteByte('&')
			sb.WriteString(query)
		}
	} else if query != "" {
		sb.WriteByte('?')
		sb.WriteString(query)
	}
	return sb.String()
}

// formatValue converts a parameter value into its query string form.
// The second result is false when the value is absent.
func formatValue(value any) (string, bool) {
	if value == nil {
		return "", false
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		value = rv.Elem().Interface()
	}

	switch v := value.(type) {
	case time.Time:
		return v.Format(dateLayout), true
	case Date:
		if v.IsZero() {
			return "", false
		}
		return v.Format(dateLayout), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case string:
		return escape(v), true
	case bool:
		return strconv.FormatBool(v), true
	case fmt.Stringer:
		return escape(v.String()), true
	default:
		return escape(fmt.Sprint(v)), true
	}
}

// escape percent-encodes a value for a query string. Spaces become %20
// rather than '+', so the rendered value round-trips through any
// percent-decoder.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func optString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func optInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}

func optDecimal(v float64) any {
	if v == 0 {
		return nil
	}
	return v
}

func optDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
