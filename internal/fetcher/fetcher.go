package fetcher

import (
	"context"
	"encoding/json"
)

// Fetcher defines the interface for downloading remote JSON entities.
type Fetcher interface {
	// GetJSON fetches the URL and returns the raw response body.
	// A 404 response, exhausted retries, or a malformed body all yield
	// (nil, nil): the entity is simply missing for this run. The error
	// return is reserved for context cancellation.
	GetJSON(ctx context.Context, url string) (json.RawMessage, error)
}

// GetTyped fetches a URL through f and decodes the body into T.
// Missing entities and undecodable bodies both return (nil, nil) so the
// calling stage can skip the entity and pick it up on the next run.
func GetTyped[T any](ctx context.Context, f Fetcher, url string) (*T, error) {
	raw, err := f.GetJSON(ctx, url)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, nil
	}
	return &v, nil
}
