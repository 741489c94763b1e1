package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/dimsuz/build-publish/pkg/cli/config"
	"github.com/dimsuz/build-publish/pkg/usecase"
)

func cmdPublish() *cli.Command {
	var (
		publishCfg config.Publish
		gitCfg     config.Git
		notifyCfg  config.Notify
		variants   []string
	)

	flags := append(publishCfg.Flags(), gitCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)
	flags = append(flags, &cli.StringSliceFlag{
		Name:        "variant",
		Usage:       "Variant to publish (repeatable; all configured variants when omitted)",
		Destination: &variants,
	})

	return &cli.Command{
		Name:    "publish",
		Aliases: []string{"p"},
		Usage:   "Run the full pipeline: resolve tag, build changelog, notify targets",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := publishCfg.Load(); err != nil {
				return err
			}

			git, err := openRepo(&gitCfg)
			if err != nil {
				return err
			}

			notifiers, err := buildNotifiers(&publishCfg, &notifyCfg)
			if err != nil {
				return err
			}

			selected, err := selectVariants(publishCfg.BuildVariants(), variants)
			if err != nil {
				return err
			}

			store := openStore(&gitCfg)
			pipeline := usecase.NewPipeline(
				usecase.NewTagResolver(git, store, publishCfg.Policy()),
				usecase.NewChangelogBuilder(git, publishCfg.CommitMarker),
				usecase.NewDispatcher(notifiers),
				gitCfg.OutDir,
				publishCfg.BaseOutputName,
			)

			logger.Info("Publishing",
				"config", publishCfg.Path,
				"repo", gitCfg.RepoPath,
				"variants", len(selected),
				"targets", len(notifiers),
			)

			return pipeline.Run(ctx, selected)
		},
	}
}
