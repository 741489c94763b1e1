package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/dimsuz/build-publish/pkg/cli/config"
	"github.com/dimsuz/build-publish/pkg/domain/types"
	"github.com/dimsuz/build-publish/pkg/usecase"
)

func cmdChangelog() *cli.Command {
	var (
		publishCfg config.Publish
		gitCfg     config.Git
		variants   []string
	)

	flags := append(publishCfg.Flags(), gitCfg.Flags()...)
	flags = append(flags, &cli.StringSliceFlag{
		Name:        "variant",
		Usage:       "Variant to build a changelog for (repeatable)",
		Destination: &variants,
	})

	return &cli.Command{
		Name:  "changelog",
		Usage: "Build the changelog artifact from the persisted tag record",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := publishCfg.Load(); err != nil {
				return err
			}

			git, err := openRepo(&gitCfg)
			if err != nil {
				return err
			}

			selected, err := selectVariants(publishCfg.BuildVariants(), variants)
			if err != nil {
				return err
			}

			store := openStore(&gitCfg)
			builder := usecase.NewChangelogBuilder(git, publishCfg.CommitMarker)

			for _, variant := range selected {
				tag, err := store.Load(variant)
				if err != nil {
					return err
				}
				if tag == nil {
					return goerr.New("no resolved tag record, run resolve-tag first",
						goerr.T(types.ErrTagState), goerr.V("variant", variant.Name))
				}

				changelog, err := builder.Build(ctx, variant, *tag)
				if err != nil {
					return err
				}

				path := usecase.ChangelogPath(gitCfg.OutDir, variant)
				if err := builder.Write(changelog, path); err != nil {
					return err
				}

				logger.Info("Wrote changelog artifact",
					"variant", variant.Name,
					"path", path,
					"entries", len(changelog.Entries),
				)
			}

			return nil
		},
	}
}
