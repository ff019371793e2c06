package session

import (
	"context"

	"github.com/disckocrip/retro-backend/internal/entity"
)

// Controller is what the handler needs from the session core.
type Controller interface {
	State() entity.StateDTO
	SetRating(id string, value int) error
	SetText(id, value string) error
	Advance() error
	Retreat() error
	Submit(ctx context.Context) (messageID string, err error)
	OpenGallery() error
	CloseGallery() error
	PopMoment() error
	ResetStack() error
	WalkAway() error
}
