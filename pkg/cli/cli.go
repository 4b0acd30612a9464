// Package cli provides the command-line interface for tms-tool.
package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "base-url",
		Usage:   "TMS API base URL",
		EnvVars: []string{"TMS_BASE_URL"},
	},
	&cli.StringFlag{
		Name:    "email",
		Usage:   "Sign-in email",
		EnvVars: []string{"TMS_EMAIL"},
	},
	&cli.StringFlag{
		Name:    "password",
		Usage:   "Sign-in password",
		EnvVars: []string{"TMS_PASSWORD"},
	},
	&cli.StringFlag{
		Name:  "config",
		Usage: "Path to config.yaml (default: ./config.yaml)",
	},
	&cli.StringFlag{
		Name:    "log",
		Usage:   "Log file path (default: stderr)",
		EnvVars: []string{"TMS_LOG_FILE"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Enable verbose logging",
		EnvVars: []string{"TMS_VERBOSE"},
	},
}

// Execute runs the CLI.
func Execute() {
	app := &cli.App{
		Name:    "tms-tool",
		Usage:   "Import and export TMS test cases as spreadsheet-ready files",
		Version: Version,
		Description: `tms-tool exports test cases from a Test Management System into a
semicolon-delimited file for spreadsheet editing and imports edited
files back, reconciling folders along the way.

Credentials come from flags, a config.yaml, or TMS_* environment
variables (a .env file in the working directory is honored).

Examples:
  tms-tool projects
  tms-tool export --project 12 --output ~/Downloads
  tms-tool import --project 12 --folder Regression testcases.csv`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			exportCommand,
			importCommand,
			projectsCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
