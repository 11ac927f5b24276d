package backend

import (
	"context"
	"net/http"
)

// Health reports whether the backend is up.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.callJSON(ctx, "health", http.MethodGet, c.url("health"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
