package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultImageSize is used when no size is given.
const DefaultImageSize = "original"

// StorageService downloads image assets from the image host.
type StorageService service

// ImageURL returns the URL of an image path at the given size.
func (s *StorageService) ImageURL(path, size string) string {
	if size == "" {
		size = DefaultImageSize
	}
	return s.client.imageBaseURL + "/" + size + "/" + strings.TrimPrefix(path, "/")
}

// Download streams an image into w and returns the number of bytes
// written. The request carries no credentials. A non-success status is
// returned as *ServiceError before anything is written.
func (s *StorageService) Download(ctx context.Context, path, size string, w io.Writer) (int64, error) {
	if strings.TrimSpace(path) == "" {
		return 0, fmt.Errorf("%w: empty image path", ErrInvalidArgument)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.ImageURL(path, size), nil)
	if err != nil {
		return 0, fmt.Errorf("tmdb: build image request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &ServiceError{StatusCode: resp.StatusCode, Message: reasonPhrase(resp)}
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("tmdb: download %s: %w", path, err)
	}
	return n, nil
}
