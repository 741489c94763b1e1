package config

import "github.com/urfave/cli/v3"

// Git holds repository and artifact path configuration
type Git struct {
	RepoPath string
	StateDir string
	OutDir   string
}

// Flags returns CLI flags for repository configuration
func (c *Git) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Path to the git repository",
			Value:       ".",
			Destination: &c.RepoPath,
			Sources:     cli.EnvVars("BUILD_PUBLISH_REPO"),
		},
		&cli.StringFlag{
			Name:        "state-dir",
			Usage:       "Directory for per-variant tag state files",
			Value:       "build/publish",
			Destination: &c.StateDir,
			Sources:     cli.EnvVars("BUILD_PUBLISH_STATE_DIR"),
		},
		&cli.StringFlag{
			Name:        "out-dir",
			Usage:       "Directory for changelog artifacts",
			Value:       "build/publish",
			Destination: &c.OutDir,
			Sources:     cli.EnvVars("BUILD_PUBLISH_OUT_DIR"),
		},
	}
}
