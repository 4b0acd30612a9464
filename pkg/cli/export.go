package cli

import (
	"fmt"
	"strconv"

	"github.com/devicelab-dev/tms-tool/pkg/exporter"
	"github.com/devicelab-dev/tms-tool/pkg/tms"
	"github.com/urfave/cli/v2"
)

var exportCommand = &cli.Command{
	Name:  "export",
	Usage: "Export a project's test cases to a delimited file",
	Description: `Fetch every test case of the project, steps included, and write them
to testcases_export_<project>_<timestamp>.csv in the output directory.

Examples:
  tms-tool export --project 12
  tms-tool export --project 12 --output ~/Downloads/tms-tool`,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:     "project",
			Aliases:  []string{"p"},
			Usage:    "Project id to export",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output directory",
			Value:   ".",
		},
	},
	Action: runExport,
}

func runExport(c *cli.Context) error {
	client, lg, err := setup(c)
	if err != nil {
		return err
	}
	defer lg.Close()

	projectID := c.Int("project")
	name := projectName(client, projectID)

	exp := exporter.New(client, lg)
	path, count, err := exp.Export(projectID, name, c.String("output"))
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d test cases to %s\n", count, path)
	return nil
}

// projectName resolves the project's display name for the export file
// name, falling back to the numeric id when the listing fails.
func projectName(client *tms.Client, projectID int) string {
	projects, err := client.Projects()
	if err == nil {
		for _, p := range projects {
			if p.ID == projectID {
				return p.Name
			}
		}
	}
	return strconv.Itoa(projectID)
}
