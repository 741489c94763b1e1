package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/dimsuz/build-publish/pkg/domain/model"
	"github.com/dimsuz/build-publish/pkg/domain/types"
	"github.com/dimsuz/build-publish/pkg/utils/issuelink"
)

// Notifier delivers changelog payloads to a Slack channel.
type Notifier struct {
	client   *slack.Client
	channel  string
	mentions []string
	linker   *issuelink.Linker
}

// New creates a Slack notifier. Mentions are Slack user IDs, expanded to
// <@id> syntax on render. The token never appears in rendered payloads.
func New(token, channel string, mentions []string, linker *issuelink.Linker) *Notifier {
	return &Notifier{
		client:   slack.New(token),
		channel:  channel,
		mentions: mentions,
		linker:   linker,
	}
}

func (n *Notifier) Kind() model.TargetKind {
	return model.TargetSlack
}

// Render composes the mrkdwn message: header naming the artifact and
// release, changelog body with issue links, mention line appended.
func (n *Notifier) Render(payload model.Payload) (model.RenderedMessage, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "*%s* — %s\n", payload.BaseOutputName, payload.Tag.String())

	body := payload.Changelog
	if strings.TrimSpace(body) == "" {
		body = "No changes.\n"
	}
	sb.WriteString(n.linker.Rewrite(body, issuelink.StyleSlack))

	if len(n.mentions) > 0 {
		expanded := make([]string, 0, len(n.mentions))
		for _, id := range n.mentions {
			expanded = append(expanded, fmt.Sprintf("<@%s>", id))
		}
		sb.WriteString("\n" + strings.Join(expanded, " "))
	}

	return model.RenderedMessage{Kind: n.Kind(), Body: sb.String()}, nil
}

// Deliver posts the rendered message to the configured channel.
func (n *Notifier) Deliver(ctx context.Context, msg model.RenderedMessage) error {
	_, _, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(msg.Body, false),
		slack.MsgOptionDisableLinkUnfurl(),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post slack message",
			goerr.T(types.ErrTagDelivery), goerr.V("channel", n.channel))
	}
	return nil
}
