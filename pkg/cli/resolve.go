package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dimsuz/build-publish/pkg/cli/config"
	"github.com/dimsuz/build-publish/pkg/usecase"
)

func cmdResolveTag() *cli.Command {
	var (
		publishCfg config.Publish
		gitCfg     config.Git
		variants   []string
	)

	flags := append(publishCfg.Flags(), gitCfg.Flags()...)
	flags = append(flags, &cli.StringSliceFlag{
		Name:        "variant",
		Usage:       "Variant to resolve (repeatable; all configured variants when omitted)",
		Destination: &variants,
	})

	return &cli.Command{
		Name:  "resolve-tag",
		Usage: "Resolve and persist the next release tag for each variant",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
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

			resolver := usecase.NewTagResolver(git, openStore(&gitCfg), publishCfg.Policy())
			for _, variant := range selected {
				tag, err := resolver.Resolve(ctx, variant)
				if err != nil {
					return err
				}
				fmt.Printf("%s: %s\n", variant.Name, tag.TagName())
			}

			return nil
		},
	}
}
