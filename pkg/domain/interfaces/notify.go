package interfaces

import (
	"context"

	"github.com/dimsuz/build-publish/pkg/domain/model"
)

// Notifier is the per-target capability interface. Render composes the
// channel-specific message (mentions expanded, issue links applied) without
// touching the network; Deliver performs the single outbound call.
type Notifier interface {
	Kind() model.TargetKind
	Render(payload model.Payload) (model.RenderedMessage, error)
	Deliver(ctx context.Context, msg model.RenderedMessage) error
}
