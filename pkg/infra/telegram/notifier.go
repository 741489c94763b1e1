package telegram

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/dimsuz/build-publish/pkg/domain/model"
	"github.com/dimsuz/build-publish/pkg/domain/types"
	"github.com/dimsuz/build-publish/pkg/utils/issuelink"
)

// Notifier delivers changelog payloads to a Telegram chat via the Bot API.
type Notifier struct {
	token    string
	chat     string
	mentions []string
	linker   *issuelink.Linker
}

// New creates a Telegram notifier. Chat is either a numeric chat ID or an
// "@channel" username. Mentions are Telegram usernames without the leading
// "@". The bot session is established on Deliver so that Render stays
// network-free.
func New(token, chat string, mentions []string, linker *issuelink.Linker) *Notifier {
	return &Notifier{
		token:    token,
		chat:     chat,
		mentions: mentions,
		linker:   linker,
	}
}

func (n *Notifier) Kind() model.TargetKind {
	return model.TargetTelegram
}

// Render composes the HTML-mode message. Changelog text is escaped before
// issue links are applied, so commit messages cannot inject markup.
func (n *Notifier) Render(payload model.Payload) (model.RenderedMessage, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "<b>%s</b> — %s\n", html.EscapeString(payload.BaseOutputName),
		html.EscapeString(payload.Tag.String()))

	body := payload.Changelog
	if strings.TrimSpace(body) == "" {
		body = "No changes.\n"
	}
	sb.WriteString(n.linker.Rewrite(html.EscapeString(body), issuelink.StyleHTML))

	if len(n.mentions) > 0 {
		expanded := make([]string, 0, len(n.mentions))
		for _, name := range n.mentions {
			expanded = append(expanded, "@"+strings.TrimPrefix(name, "@"))
		}
		sb.WriteString("\n" + strings.Join(expanded, " "))
	}

	return model.RenderedMessage{Kind: n.Kind(), Body: sb.String()}, nil
}

// Deliver sends the rendered message to the configured chat.
func (n *Notifier) Deliver(ctx context.Context, msg model.RenderedMessage) error {
	bot, err := tgbotapi.NewBotAPI(n.token)
	if err != nil {
		return goerr.Wrap(err, "failed to create telegram bot session",
			goerr.T(types.ErrTagDelivery))
	}

	var out tgbotapi.MessageConfig
	if strings.HasPrefix(n.chat, "@") {
		out = tgbotapi.NewMessageToChannel(n.chat, msg.Body)
	} else {
		chatID, err := strconv.ParseInt(n.chat, 10, 64)
		if err != nil {
			return goerr.Wrap(err, "telegram chat must be numeric or @channel",
				goerr.T(types.ErrTagDelivery), goerr.V("chat", n.chat))
		}
		out = tgbotapi.NewMessage(chatID, msg.Body)
	}
	out.ParseMode = tgbotapi.ModeHTML
	out.DisableWebPagePreview = true

	if _, err := bot.Send(out); err != nil {
		return goerr.Wrap(err, "failed to send telegram message",
			goerr.T(types.ErrTagDelivery), goerr.V("chat", n.chat))
	}

	return nil
}
