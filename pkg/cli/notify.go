package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/dimsuz/build-publish/pkg/cli/config"
	"github.com/dimsuz/build-publish/pkg/domain/model"
	"github.com/dimsuz/build-publish/pkg/domain/types"
	"github.com/dimsuz/build-publish/pkg/usecase"
)

func cmdNotify() *cli.Command {
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
		Usage:       "Variant whose changelog to deliver (repeatable)",
		Destination: &variants,
	})

	return &cli.Command{
		Name:  "notify",
		Usage: "Deliver the built changelog artifact to the configured targets",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := publishCfg.Load(); err != nil {
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
			dispatcher := usecase.NewDispatcher(notifiers)

			for _, variant := range selected {
				tag, err := store.Load(variant)
				if err != nil {
					return err
				}
				if tag == nil {
					return goerr.New("no resolved tag record, run resolve-tag first",
						goerr.T(types.ErrTagState), goerr.V("variant", variant.Name))
				}

				path := usecase.ChangelogPath(gitCfg.OutDir, variant)
				raw, err := os.ReadFile(path)
				if err != nil {
					return goerr.Wrap(err, "no changelog artifact, run changelog first",
						goerr.T(types.ErrTagState), goerr.V("path", path))
				}

				summary := dispatcher.Dispatch(ctx, model.Payload{
					Variant:        variant,
					Tag:            *tag,
					BaseOutputName: publishCfg.BaseOutputName,
					Changelog:      string(raw),
				})

				if failed := summary.Failed(); len(failed) > 0 {
					return goerr.New("delivery failed for some targets",
						goerr.T(types.ErrTagDelivery),
						goerr.V("variant", variant.Name),
						goerr.V("failed", len(failed)))
				}
			}

			return nil
		},
	}
}
