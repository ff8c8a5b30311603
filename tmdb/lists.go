package tmdb

import (
	"context"
	"net/http"
)

// ListService covers the user list endpoints.
type ListService service

// Get returns a list with its items.
func (s *ListService) Get(ctx context.Context, id string) (*List, error) {
	if id == "" {
		return nil, ErrInvalidArgument
	}
	return get[List](ctx, s.client, NewCommand("list/%s", id))
}

// Contains reports whether a list contains a movie.
func (s *ListService) Contains(ctx context.Context, id string, movieID int) (bool, error) {
	if id == "" {
		return false, ErrInvalidArgument
	}
	status, err := get[ItemStatus](ctx, s.client, NewCommand("list/%s/item_status", id).With("movie_id", movieID))
	if err != nil {
		return false, err
	}
	return status.Present, nil
}

// Create creates a list and returns its id. An empty language is not sent.
func (s *ListService) Create(ctx context.Context, session, name, description, language string) (ListID, error) {
	if session == "" || name == "" {
		return "", ErrInvalidArgument
	}
	body := struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Language    string `json:"language,omitempty"`
	}{name, description, language}

	data, err := marshalBody(NewCommand("list"), body)
	if err != nil {
		return "", err
	}

	var created ListCreated
	req := request{
		method: http.MethodPost,
		cmd:    NewCommand("list").With("session_id", session),
		body:   data,
	}
	if err := s.client.do(ctx, req, &created); err != nil {
		return "", err
	}
	return created.ListID, nil
}

// Insert adds a movie to a list.
func (s *ListService) Insert(ctx context.Context, session, id string, mediaID int) (bool, error) {
	return s.changeItem(ctx, session, id, "add_item", mediaID)
}

// Remove removes a movie from a list.
func (s *ListService) Remove(ctx context.Context, session, id string, mediaID int) (bool, error) {
	return s.changeItem(ctx, session, id, "remove_item", mediaID)
}

// Clear removes all items from a list.
func (s *ListService) Clear(ctx context.Context, session, id string) (bool, error) {
	if session == "" || id == "" {
		return false, ErrInvalidArgument
	}
	cmd := NewCommand("list/%s/clear", id).With("session_id", session).With("confirm", true)
	return send(ctx, s.client, http.MethodPost, cmd, nil)
}

// Delete deletes a list.
func (s *ListService) Delete(ctx context.Context, session, id string) (bool, error) {
	if session == "" || id == "" {
		return false, ErrInvalidArgument
	}
	cmd := NewCommand("list/%s", id).With("session_id", session)
	return send(ctx, s.client, http.MethodDelete, cmd, nil)
}

func (s *ListService) changeItem(ctx context.Context, session, id, action string, mediaID int) (bool, error) {
	if session == "" || id == "" {
		return false, ErrInvalidArgument
	}
	cmd := NewCommand("list/%s/%s", id, action).With("session_id", session)
	return send(ctx, s.client, http.MethodPost, cmd, struct {
		MediaID int `json:"media_id"`
	}{mediaID})
}
