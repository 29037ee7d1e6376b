package extractor

import (
	"context"
	"encoding/json"
)

// GraphAPI abstracts the Graph API client.
type GraphAPI interface {
	GetObject(ctx context.Context, id string, params map[string]string, out any) error
	GetAllConnections(ctx context.Context, id, connection string, params map[string]string, fn func(json.RawMessage) error) error
}
