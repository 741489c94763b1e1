package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/dimsuz/build-publish/pkg/domain/interfaces"
	"github.com/dimsuz/build-publish/pkg/domain/model"
	"github.com/dimsuz/build-publish/pkg/usecase"
)

func TestDispatcher_AllTargetsSucceed(t *testing.T) {
	ctx := context.Background()
	slack := &mockNotifier{kind: model.TargetSlack}
	telegram := &mockNotifier{kind: model.TargetTelegram}

	dispatcher := usecase.NewDispatcher([]interfaces.Notifier{slack, telegram})

	summary := dispatcher.Dispatch(ctx, model.Payload{Changelog: "fix bug\n"})

	gt.Value(t, summary.AllSucceeded()).Equal(true)
	gt.Value(t, len(slack.delivered)).Equal(1)
	gt.Value(t, len(telegram.delivered)).Equal(1)
}

func TestDispatcher_OneTargetFailureIsIsolated(t *testing.T) {
	ctx := context.Background()
	reachable := &mockNotifier{kind: model.TargetSlack}
	unreachable := &mockNotifier{kind: model.TargetTelegram, deliverErr: errUnreachable}

	dispatcher := usecase.NewDispatcher([]interfaces.Notifier{unreachable, reachable})

	summary := dispatcher.Dispatch(ctx, model.Payload{Changelog: "fix bug\n"})

	gt.Value(t, summary.AllSucceeded()).Equal(false)
	gt.Value(t, len(summary.Results)).Equal(2)
	gt.Value(t, len(summary.Failed())).Equal(1)
	gt.Value(t, summary.Failed()[0].Kind).Equal(model.TargetTelegram)

	// The reachable target still received the payload.
	gt.Value(t, len(reachable.delivered)).Equal(1)
	gt.Value(t, reachable.delivered[0].Body).Equal("fix bug\n")
}

func TestDispatcher_RenderFailureIsIsolated(t *testing.T) {
	ctx := context.Background()
	broken := &mockNotifier{kind: model.TargetSlack, renderErr: errUnreachable}
	healthy := &mockNotifier{kind: model.TargetTelegram}

	dispatcher := usecase.NewDispatcher([]interfaces.Notifier{broken, healthy})

	summary := dispatcher.Dispatch(ctx, model.Payload{Changelog: "x\n"})

	gt.Value(t, len(summary.Failed())).Equal(1)
	gt.Value(t, summary.Failed()[0].Kind).Equal(model.TargetSlack)
	gt.Value(t, len(healthy.delivered)).Equal(1)
}

func TestDispatcher_ZeroTargets(t *testing.T) {
	dispatcher := usecase.NewDispatcher(nil)

	summary := dispatcher.Dispatch(context.Background(), model.Payload{})

	gt.Value(t, summary.AllSucceeded()).Equal(true)
	gt.Value(t, len(summary.Results)).Equal(0)
}
