package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/dimsuz/build-publish/pkg/cli/config"
)

// cmdLastTag is the read-only operator diagnostic: it prints the persisted
// record per variant and mutates nothing.
func cmdLastTag() *cli.Command {
	var (
		publishCfg config.Publish
		gitCfg     config.Git
		variants   []string
	)

	flags := append(publishCfg.Flags(), gitCfg.Flags()...)
	flags = append(flags, &cli.StringSliceFlag{
		Name:        "variant",
		Usage:       "Variant to inspect (repeatable; all configured variants when omitted)",
		Destination: &variants,
	})

	return &cli.Command{
		Name:  "last-tag",
		Usage: "Print the last resolved tag record for each variant",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := publishCfg.Load(); err != nil {
				return err
			}

			selected, err := selectVariants(publishCfg.BuildVariants(), variants)
			if err != nil {
				return err
			}

			store := openStore(&gitCfg)

			bold := color.New(color.Bold)
			faint := color.New(color.Faint)

			for _, variant := range selected {
				tag, err := store.Load(variant)
				if err != nil {
					return err
				}

				bold.Printf("%s: ", variant.Name)
				if tag == nil {
					faint.Println("no tag resolved yet")
					continue
				}
				color.Green("%s", tag.String())
			}

			return nil
		},
	}
}
