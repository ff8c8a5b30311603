package tmdb

import (
	"context"
	"encoding/json"
)

// SystemService covers account, configuration and reference data.
type SystemService service

// GetAccount returns the account behind a session.
func (s *SystemService) GetAccount(ctx context.Context, session string) (*Account, error) {
	if session == "" {
		return nil, ErrInvalidArgument
	}
	return get[Account](ctx, s.client, NewCommand("account").With("session_id", session))
}

// GetCertifications returns the content ratings of a catalog, keyed by
// country code.
func (s *SystemService) GetCertifications(ctx context.Context, catalog Catalog) (map[string][]Certification, error) {
	certs, err := get[Certifications](ctx, s.client, NewCommand(catalog.listPath("certification")))
	if err != nil {
		return nil, err
	}
	return certs.Results, nil
}

// GetConfiguration returns the image host settings.
func (s *SystemService) GetConfiguration(ctx context.Context) (*Configuration, error) {
	return get[Configuration](ctx, s.client, NewCommand("configuration"))
}

// GetTimezones returns the time zones of every country.
func (s *SystemService) GetTimezones(ctx context.Context) (Timezones, error) {
	zones, err := get[Timezones](ctx, s.client, NewCommand("timezones/list"))
	if err != nil {
		return nil, err
	}
	return *zones, nil
}

// GetJobs returns the departments and job titles used in crew credits.
func (s *SystemService) GetJobs(ctx context.Context) ([]Job, error) {
	jobs, err := get[Jobs](ctx, s.client, NewCommand("job/list"))
	if err != nil {
		return nil, err
	}
	return jobs.Results, nil
}

// UnmarshalJSON accepts both the list form returned by the service and a
// plain country map.
func (z *Timezones) UnmarshalJSON(data []byte) error {
	var flat map[string][]string
	if err := json.Unmarshal(data, &flat); err == nil {
		*z = flat
		return nil
	}
	var entries []map[string][]string
	if err := json.Unmarshal(data, &entries); err != nil {
		*z = nil
		return nil
	}
	zones := make(Timezones, len(entries))
	for _, entry := range entries {
		for country, names := range entry {
			zones[country] = append(zones[country], names...)
		}
	}
	*z = zones
	return nil
}
