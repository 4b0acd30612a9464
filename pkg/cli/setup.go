package cli

import (
	"fmt"
	"os"

	"github.com/devicelab-dev/tms-tool/pkg/config"
	"github.com/devicelab-dev/tms-tool/pkg/logger"
	"github.com/devicelab-dev/tms-tool/pkg/tms"
	"github.com/urfave/cli/v2"
)

// buildConfig resolves the effective configuration: flags (with their
// env bindings) override the config file, the config file overrides
// plain environment variables.
func buildConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadFromDir(".")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if v := c.String("base-url"); v != "" {
		cfg.BaseURL = v
	}
	if v := c.String("email"); v != "" {
		cfg.Email = v
	}
	if v := c.String("password"); v != "" {
		cfg.Password = v
	}
	if v := c.String("log"); v != "" {
		cfg.LogFile = v
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(c *cli.Context, cfg *config.Config) (*logger.Logger, error) {
	var lg *logger.Logger
	if cfg.LogFile != "" {
		var err error
		lg, err = logger.NewFile(cfg.LogFile)
		if err != nil {
			return nil, err
		}
	} else {
		lg = logger.New(os.Stderr)
	}
	lg.SetVerbose(c.Bool("verbose"))
	return lg, nil
}

// setup builds the configured, authenticated client every command
// starts from. Commands fail fast when credentials are missing or the
// sign-in is rejected.
func setup(c *cli.Context) (*tms.Client, *logger.Logger, error) {
	cfg, err := buildConfig(c)
	if err != nil {
		return nil, nil, err
	}

	lg, err := newLogger(c, cfg)
	if err != nil {
		return nil, nil, err
	}

	client := tms.NewClient(cfg.BaseURL, cfg.Email, cfg.Password, lg)
	if err := client.Authenticate(); err != nil {
		lg.Close()
		return nil, nil, err
	}
	return client, lg, nil
}
