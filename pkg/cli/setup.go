package cli

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/dimsuz/build-publish/pkg/cli/config"
	"github.com/dimsuz/build-publish/pkg/domain/interfaces"
	"github.com/dimsuz/build-publish/pkg/domain/model"
	"github.com/dimsuz/build-publish/pkg/domain/types"
	gitinfra "github.com/dimsuz/build-publish/pkg/infra/git"
	slackinfra "github.com/dimsuz/build-publish/pkg/infra/slack"
	"github.com/dimsuz/build-publish/pkg/infra/tagstore"
	telegraminfra "github.com/dimsuz/build-publish/pkg/infra/telegram"
	"github.com/dimsuz/build-publish/pkg/utils/issuelink"
)

// openRepo is the prerequisite check shared by every history-reading
// command: an unreadable repository aborts before any stage runs.
func openRepo(gitCfg *config.Git) (interfaces.GitClient, error) {
	return gitinfra.Open(gitCfg.RepoPath)
}

func openStore(gitCfg *config.Git) interfaces.TagStore {
	return tagstore.New(gitCfg.StateDir)
}

// buildNotifiers constructs one notifier per target declared in the
// publish config. A declared target without its credential is a
// configuration error, caught before any delivery is attempted.
func buildNotifiers(publishCfg *config.Publish, notifyCfg *config.Notify) ([]interfaces.Notifier, error) {
	linker, err := issuelink.New(publishCfg.Issues.Pattern, publishCfg.Issues.URLPrefix)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid issue link configuration",
			goerr.T(types.ErrTagConfig))
	}

	var notifiers []interfaces.Notifier

	if t := publishCfg.Targets.Slack; t != nil {
		if notifyCfg.SlackToken == "" {
			return nil, goerr.New("slack target configured but slack token is missing",
				goerr.T(types.ErrTagConfig))
		}
		notifiers = append(notifiers, slackinfra.New(notifyCfg.SlackToken, t.Channel, t.Mentions, linker))
	}

	if t := publishCfg.Targets.Telegram; t != nil {
		if notifyCfg.TelegramToken == "" {
			return nil, goerr.New("telegram target configured but telegram token is missing",
				goerr.T(types.ErrTagConfig))
		}
		notifiers = append(notifiers, telegraminfra.New(notifyCfg.TelegramToken, t.Chat, t.Mentions, linker))
	}

	return notifiers, nil
}

// selectVariants filters the configured variants by the --variant flag,
// keeping all of them when the filter is empty.
func selectVariants(all []model.BuildVariant, names []string) ([]model.BuildVariant, error) {
	if len(names) == 0 {
		return all, nil
	}

	byName := make(map[string]model.BuildVariant, len(all))
	for _, v := range all {
		byName[v.Name] = v
	}

	var selected []model.BuildVariant
	for _, name := range names {
		v, ok := byName[name]
		if !ok {
			return nil, goerr.New("unknown variant",
				goerr.T(types.ErrTagConfig), goerr.V("variant", name))
		}
		selected = append(selected, v)
	}
	return selected, nil
}
