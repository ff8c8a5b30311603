package tmdb

import (
	"bytes"
	"encoding/json"
)

// MediaType is the discriminator carried by mixed-kind results.
type MediaType string

// Media types known to the resolver.
const (
	MediaMovie   MediaType = "movie"
	MediaPerson  MediaType = "person"
	MediaTV      MediaType = "tv"
	MediaSeason  MediaType = "tv_season"
	MediaEpisode MediaType = "tv_episode"
)

// Resource is one entry of a mixed-kind result, such as a multi-search hit
// or a person's known_for entry. Exactly one of the shape pointers is set
// for a recognized media type; shapes registered with WithShape land in
// Other. For any other media type all shapes are nil and Raw holds the
// original payload.
type Resource struct {
	MediaType MediaType       `yaml:"media_type"`
	Movie     *Movie          `yaml:"movie,omitempty"`
	Person    *Person         `yaml:"person,omitempty"`
	Show      *Show           `yaml:"show,omitempty"`
	Season    *Season         `yaml:"season,omitempty"`
	Episode   *Episode        `yaml:"episode,omitempty"`
	Other     any             `yaml:"other,omitempty"`
	Raw       json.RawMessage `yaml:"-"`

	// src is the payload the resource was resolved from, kept so a client
	// can resolve it again with its own Resolver.
	src json.RawMessage
}

// Value returns the populated shape, or nil.
func (r Resource) Value() any {
	switch {
	case r.Other != nil:
		return r.Other
	case r.Movie != nil:
		return r.Movie
	case r.Person != nil:
		return r.Person
	case r.Show != nil:
		return r.Show
	case r.Season != nil:
		return r.Season
	case r.Episode != nil:
		return r.Episode
	}
	return nil
}

// ID returns the identifier of the populated shape, or 0.
func (r Resource) ID() int {
	switch {
	case r.Movie != nil:
		return r.Movie.ID
	case r.Person != nil:
		return r.Person.ID
	case r.Show != nil:
		return r.Show.ID
	case r.Season != nil:
		return r.Season.ID
	case r.Episode != nil:
		return r.Episode.ID
	}
	return 0
}

// Title returns the display name of the populated shape.
func (r Resource) Title() string {
	switch {
	case r.Movie != nil:
		return r.Movie.Title
	case r.Person != nil:
		return r.Person.Name
	case r.Show != nil:
		return r.Show.Name
	case r.Season != nil:
		return r.Season.Name
	case r.Episode != nil:
		return r.Episode.Name
	}
	return ""
}

// Year returns the release or first-air year, or 0.
func (r Resource) Year() int {
	switch {
	case r.Movie != nil:
		return r.Movie.ReleaseDate.Year()
	case r.Show != nil:
		return r.Show.FirstAirDate.Year()
	case r.Season != nil:
		return r.Season.AirDate.Year()
	case r.Episode != nil:
		return r.Episode.AirDate.Year()
	}
	return 0
}

// UnmarshalJSON resolves the payload with the default shape table. Results
// decoded by a Client are resolved again with the client's Resolver.
// It never fails: unusable payloads leave the Resource empty.
func (r *Resource) UnmarshalJSON(data []byte) error {
	*r = defaultResolver.Resolve(data)
	return nil
}

func (r *Resource) bindResolver(rs *Resolver) {
	if len(r.src) == 0 {
		return
	}
	*r = rs.Resolve(r.src)
}

// resolverBinder is implemented by decoded values that hold Resources,
// directly or nested.
type resolverBinder interface {
	bindResolver(rs *Resolver)
}

// bind re-resolves the Resources held by v with rs. The default resolver
// produced them in the first place, so there is nothing to do for it.
func (rs *Resolver) bind(v any) {
	if rs == nil || rs == defaultResolver {
		return
	}
	if b, ok := v.(resolverBinder); ok {
		b.bindResolver(rs)
	}
}

// MarshalJSON writes the populated shape back in its wire form, with the
// media_type field first.
func (r Resource) MarshalJSON() ([]byte, error) {
	shape := r.Value()
	if shape == nil {
		if len(r.Raw) > 0 {
			return r.Raw, nil
		}
		return json.Marshal(struct {
			MediaType MediaType `json:"media_type,omitempty"`
		}{r.MediaType})
	}

	body, err := json.Marshal(shape)
	if err != nil || r.MediaType == "" || len(body) < 2 || body[0] != '{' {
		return body, err
	}
	tag, err := json.Marshal(r.MediaType)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"media_type":`)
	buf.Write(tag)
	if !bytes.Equal(body, []byte("{}")) {
		buf.WriteByte(',')
	}
	buf.Write(body[1:])
	return buf.Bytes(), nil
}

// ShapeFunc allocates the concrete shape for a media type, attaches it to
// the resource and returns it as the decode target.
type ShapeFunc func(r *Resource) any

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithShape registers the shape for a media type, replacing a built-in one
// when the tag is already known.
func WithShape(mt MediaType, shape ShapeFunc) ResolverOption {
	return func(rs *Resolver) {
		if shape == nil {
			delete(rs.shapes, mt)
			return
		}
		rs.shapes[mt] = shape
	}
}

// Resolver picks the concrete shape of a mixed-kind payload from its
// media_type field. A Resolver is immutable after construction and safe for
// concurrent use.
type Resolver struct {
	shapes map[MediaType]ShapeFunc
}

var defaultResolver = NewResolver()

// NewResolver returns a Resolver for movie, person, tv, tv_season and
// tv_episode payloads plus any shapes given as options.
func NewResolver(opts ...ResolverOption) *Resolver {
	rs := &Resolver{shapes: map[MediaType]ShapeFunc{
		MediaMovie:   func(r *Resource) any { r.Movie = &Movie{}; return r.Movie },
		MediaPerson:  func(r *Resource) any { r.Person = &Person{}; return r.Person },
		MediaTV:      func(r *Resource) any { r.Show = &Show{}; return r.Show },
		MediaSeason:  func(r *Resource) any { r.Season = &Season{}; return r.Season },
		MediaEpisode: func(r *Resource) any { r.Episode = &Episode{}; return r.Episode },
	}}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// Knows reports whether the resolver has a shape for the media type.
func (rs *Resolver) Knows(mt MediaType) bool {
	_, ok := rs.shapes[mt]
	return ok
}

// Resolve decodes one payload. Unrecognized media types and payloads that
// are not JSON objects come back with no shape set and Raw populated.
func (rs *Resolver) Resolve(data []byte) Resource {
	raw := append(json.RawMessage(nil), data...)
	if isNull(data) {
		return Resource{}
	}

	var head struct {
		MediaType MediaType `json:"media_type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Resource{Raw: raw}
	}

	res := Resource{MediaType: head.MediaType, src: raw}
	shape, ok := rs.shapes[head.MediaType]
	if !ok {
		res.Raw = raw
		return res
	}

	target := shape(&res)
	// mismatched fields stay at their zero value
	_ = json.Unmarshal(data, target)
	rs.bind(target)
	return res
}

// ResolveAll resolves each payload in order.
func (rs *Resolver) ResolveAll(items []json.RawMessage) []Resource {
	out := make([]Resource, 0, len(items))
	for _, item := range items {
		out = append(out, rs.Resolve(item))
	}
	return out
}

// resolveAs resolves payloads that lack a media_type field, as in find
// results where the kind is given by the enclosing list.
func (rs *Resolver) resolveAs(mt MediaType, items []json.RawMessage) []Resource {
	shape, ok := rs.shapes[mt]
	if !ok {
		return nil
	}
	out := make([]Resource, 0, len(items))
	for _, item := range items {
		res := Resource{MediaType: mt}
		target := shape(&res)
		_ = json.Unmarshal(item, target)
		rs.bind(target)
		out = append(out, res)
	}
	return out
}
