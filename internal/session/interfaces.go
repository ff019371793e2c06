package session

import (
	"context"

	"github.com/disckocrip/retro-backend/internal/entity"
)

// Store is the persistence slot for session progress. Load deliberately has
// no error: an unreadable or outdated snapshot reads as nil so a broken
// store never blocks a fresh session.
type Store interface {
	Save(ctx context.Context, snap entity.Snapshot) error
	Load(ctx context.Context) *entity.SessionState
	Clear(ctx context.Context)
}

// Submitter delivers a finalized, ordered list of answer lines and reports
// success or failure. One call, no queue; a retry is simply another call
// with the same list.
type Submitter interface {
	Submit(ctx context.Context, answers []string) (messageID string, err error)
}
