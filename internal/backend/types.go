package backend

import (
	"fmt"

	"github.com/five82/tubeclone/internal/catalog"
)

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string   `json:"status"`
	Message   string   `json:"message,omitempty"`
	Version   string   `json:"version,omitempty"`
	Endpoints []string `json:"endpoints,omitempty"`
}

// Healthy reports whether the server declared itself healthy.
func (h HealthResponse) Healthy() bool { return h.Status == "healthy" }

// ErrorResponse is the JSON body the API returns with 4xx and 5xx statuses.
type ErrorResponse struct {
	Error              string   `json:"error"`
	AvailableEndpoints []string `json:"available_endpoints,omitempty"`
}

type validator interface {
	catalog.Record
	Validate() error
}

// validateCollection checks every record and rejects duplicate ids.
func validateCollection[R validator](items []R) error {
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("%w: item %d: %v", ErrShapeMismatch, i, err)
		}
		if _, dup := seen[item.Key()]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrShapeMismatch, item.Key())
		}
		seen[item.Key()] = struct{}{}
	}
	return nil
}
