package config

import "github.com/urfave/cli/v3"

// Notify holds notification target credentials. Values are env-sourced and
// never logged: the masq tags drop them from every log record.
type Notify struct {
	SlackToken    string `masq:"secret"`
	TelegramToken string `masq:"secret"`
}

// Flags returns CLI flags for notification credentials
func (c *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-token",
			Usage:       "Slack bot token for the slack target",
			Destination: &c.SlackToken,
			Sources:     cli.EnvVars("BUILD_PUBLISH_SLACK_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "telegram-token",
			Usage:       "Telegram bot token for the telegram target",
			Destination: &c.TelegramToken,
			Sources:     cli.EnvVars("BUILD_PUBLISH_TELEGRAM_TOKEN"),
		},
	}
}
