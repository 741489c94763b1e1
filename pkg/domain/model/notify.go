package model

// TargetKind enumerates supported notification targets.
type TargetKind string

const (
	TargetSlack    TargetKind = "slack"
	TargetTelegram TargetKind = "telegram"
)

// Payload is the channel-independent input to a notifier: the changelog
// text plus the artifact identity it describes.
type Payload struct {
	Variant        BuildVariant
	Tag            TagRecord
	BaseOutputName string
	Changelog      string
}

// RenderedMessage is a channel-specific message ready for delivery. Body is
// already in the target's markup dialect with mentions and issue links
// applied.
type RenderedMessage struct {
	Kind TargetKind
	Body string
}

// DeliveryResult records the outcome of one target's delivery attempt.
type DeliveryResult struct {
	Kind TargetKind
	Err  error
}

// Succeeded reports whether this target received the payload.
func (r DeliveryResult) Succeeded() bool {
	return r.Err == nil
}

// DeliverySummary aggregates per-target outcomes of one dispatch.
type DeliverySummary struct {
	Results []DeliveryResult
}

// Failed returns the results of targets that did not receive the payload.
func (s DeliverySummary) Failed() []DeliveryResult {
	var failed []DeliveryResult
	for _, r := range s.Results {
		if !r.Succeeded() {
			failed = append(failed, r)
		}
	}
	return failed
}

// AllSucceeded reports whether every configured target received the payload.
func (s DeliverySummary) AllSucceeded() bool {
	return len(s.Failed()) == 0
}
