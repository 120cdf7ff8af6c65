package catalog

import "github.com/google/uuid"

// NewLocalID returns an id for a record created in the client. Ids are random
// UUIDs behind a "demo-" prefix so they never collide with remote ids.
func NewLocalID() string {
	return "demo-" + uuid.NewString()
}
