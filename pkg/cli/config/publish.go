package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/dimsuz/build-publish/pkg/domain/model"
	"github.com/dimsuz/build-publish/pkg/domain/types"
)

// Publish is the declarative publish configuration, loaded from a TOML
// file. Credentials are deliberately absent here; they arrive via
// env-sourced flags (see Notify).
type Publish struct {
	Path string `toml:"-"`

	BaseOutputName string `toml:"base_output_name"`
	CommitMarker   string `toml:"commit_marker"`
	VersionPolicy  string `toml:"version_policy"`

	Issues struct {
		Pattern   string `toml:"pattern"`
		URLPrefix string `toml:"url_prefix"`
	} `toml:"issues"`

	Variants []struct {
		Name         string `toml:"name"`
		ArtifactPath string `toml:"artifact_path"`
	} `toml:"variants"`

	Targets struct {
		Slack    *SlackTarget    `toml:"slack"`
		Telegram *TelegramTarget `toml:"telegram"`
	} `toml:"targets"`

	policy model.VersionPolicy
}

// SlackTarget declares the Slack delivery target. Mentions are Slack user
// IDs.
type SlackTarget struct {
	Channel  string   `toml:"channel"`
	Mentions []string `toml:"mentions"`
}

// TelegramTarget declares the Telegram delivery target. Chat is a numeric
// chat ID or an "@channel" username; mentions are usernames.
type TelegramTarget struct {
	Chat     string   `toml:"chat"`
	Mentions []string `toml:"mentions"`
}

// Flags returns CLI flags for the publish configuration file
func (c *Publish) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to publish configuration file (TOML)",
			Value:       "publish.toml",
			Destination: &c.Path,
			Sources:     cli.EnvVars("BUILD_PUBLISH_CONFIG"),
		},
	}
}

// Load reads and validates the configuration file. Any problem here is a
// configuration error that aborts the run before stages execute.
func (c *Publish) Load() error {
	raw, err := os.ReadFile(c.Path)
	if err != nil {
		return goerr.Wrap(err, "failed to read publish config",
			goerr.T(types.ErrTagConfig), goerr.V("path", c.Path))
	}

	if err := toml.Unmarshal(raw, c); err != nil {
		return goerr.Wrap(err, "failed to parse publish config",
			goerr.T(types.ErrTagConfig), goerr.V("path", c.Path))
	}

	return c.validate()
}

func (c *Publish) validate() error {
	if len(c.Variants) == 0 {
		return goerr.New("publish config declares no variants",
			goerr.T(types.ErrTagConfig), goerr.V("path", c.Path))
	}

	seen := make(map[string]bool)
	for _, v := range c.Variants {
		if v.Name == "" {
			return goerr.New("variant with empty name",
				goerr.T(types.ErrTagConfig), goerr.V("path", c.Path))
		}
		if seen[v.Name] {
			return goerr.New("duplicate variant name",
				goerr.T(types.ErrTagConfig), goerr.V("variant", v.Name))
		}
		seen[v.Name] = true
	}

	if c.BaseOutputName == "" {
		return goerr.New("base_output_name is required", goerr.T(types.ErrTagConfig))
	}

	policy, err := model.ParseVersionPolicy(c.VersionPolicy)
	if err != nil {
		return goerr.Wrap(err, "invalid version_policy", goerr.T(types.ErrTagConfig))
	}
	c.policy = policy

	if (c.Issues.Pattern == "") != (c.Issues.URLPrefix == "") {
		return goerr.New("issues.pattern and issues.url_prefix must be set together",
			goerr.T(types.ErrTagConfig))
	}

	return nil
}

// BuildVariants converts the declared variants into domain values.
func (c *Publish) BuildVariants() []model.BuildVariant {
	out := make([]model.BuildVariant, 0, len(c.Variants))
	for _, v := range c.Variants {
		out = append(out, model.BuildVariant{
			Name:         v.Name,
			ArtifactPath: v.ArtifactPath,
		})
	}
	return out
}

// Policy returns the version policy parsed during Load. Load must have
// succeeded.
func (c *Publish) Policy() model.VersionPolicy {
	return c.policy
}
