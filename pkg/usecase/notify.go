package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/dimsuz/build-publish/pkg/domain/interfaces"
	"github.com/dimsuz/build-publish/pkg/domain/model"
)

type dispatcher struct {
	notifiers []interfaces.Notifier
}

// NewDispatcher creates the notification stage over the configured
// targets. Zero targets is valid and dispatches to nobody.
func NewDispatcher(notifiers []interfaces.Notifier) interfaces.DispatchUseCase {
	return &dispatcher{notifiers: notifiers}
}

// Dispatch renders and delivers the payload to every target. Targets fail
// independently: a dead endpoint never blocks its siblings, and the
// summary records each outcome.
func (uc *dispatcher) Dispatch(ctx context.Context, payload model.Payload) model.DeliverySummary {
	logger := ctxlog.From(ctx)

	var summary model.DeliverySummary
	for _, n := range uc.notifiers {
		result := model.DeliveryResult{Kind: n.Kind()}

		msg, err := n.Render(payload)
		if err != nil {
			result.Err = goerr.Wrap(err, "failed to render notification",
				goerr.V("target", n.Kind()))
		} else if err := n.Deliver(ctx, msg); err != nil {
			result.Err = err
		}

		if result.Succeeded() {
			logger.Info("Delivered changelog notification",
				"target", n.Kind(),
				"variant", payload.Variant.Name,
			)
		} else {
			logger.Error("Failed to deliver changelog notification",
				"target", n.Kind(),
				"variant", payload.Variant.Name,
				"error", result.Err,
			)
		}

		summary.Results = append(summary.Results, result)
	}

	return summary
}
