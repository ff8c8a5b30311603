package tmdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// maxErrorBody caps how much of a failure body is read.
const maxErrorBody = 64 << 10

// decodeBody reads a success body into target.
//
// A field whose JSON value does not match its Go type is left at its zero
// value and the rest of the payload is still decoded; encoding/json reports
// the first such mismatch after finishing the document, so it is logged and
// dropped here. Syntax errors are returned.
func decodeBody(logger *slog.Logger, path string, body []byte, target any) error {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}

	err := json.Unmarshal(body, target)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		logger.Debug("Ignoring mismatched field",
			"path", path,
			"field", typeErr.Field,
			"value", typeErr.Value,
			"type", typeErr.Type.String(),
		)
		return nil
	}
	return fmt.Errorf("tmdb: decode %s: %w", path, err)
}

// errorBody is the shape of a failure response. The service uses either the
// status pair or an error list.
type errorBody struct {
	StatusCode    int      `json:"status_code"`
	StatusMessage string   `json:"status_message"`
	Errors        []string `json:"errors"`
}

// interpretError turns a non-success response into a *ServiceError. It reads
// the body but leaves closing it to the caller.
func interpretError(resp *http.Response) *ServiceError {
	svcErr := &ServiceError{
		StatusCode: resp.StatusCode,
		Message:    reasonPhrase(resp),
	}
	if resp.Body == nil {
		return svcErr
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(strings.TrimSpace(string(data))) == 0 {
		return svcErr
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return svcErr
		}
	}

	svcErr.ServiceCode = body.StatusCode
	switch {
	case len(body.Errors) > 0:
		svcErr.Message = strings.Join(body.Errors, "\n")
	case body.StatusMessage != "":
		svcErr.Message = body.StatusMessage
	}
	return svcErr
}

// reasonPhrase returns the text of the status line, e.g. "Not Found".
func reasonPhrase(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if phrase := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); phrase != "" {
		return phrase
	}
	if phrase := http.StatusText(resp.StatusCode); phrase != "" {
		return phrase
	}
	return code
}
