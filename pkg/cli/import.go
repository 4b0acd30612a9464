package cli

import (
	"fmt"

	"github.com/devicelab-dev/tms-tool/pkg/core"
	"github.com/devicelab-dev/tms-tool/pkg/importer"
	"github.com/devicelab-dev/tms-tool/pkg/table"
	"github.com/urfave/cli/v2"
)

var importCommand = &cli.Command{
	Name:      "import",
	Usage:     "Import test cases from a delimited file into a project",
	ArgsUsage: "<file.csv>",
	Description: `Decode the file, group cases by their declared destination folder,
reconcile each declared folder against the project's live folders
(reusing matches, creating the rest), and create the cases.

Cases that declare no folder at all go to the folder named by --folder;
without that flag they are skipped and counted as failed.

Examples:
  tms-tool import --project 12 testcases.csv
  tms-tool import --project 12 --folder Regression testcases.csv`,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:     "project",
			Aliases:  []string{"p"},
			Usage:    "Project id to import into",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "folder",
			Aliases: []string{"f"},
			Usage:   "Default folder name for cases without a declared folder",
		},
	},
	Action: runImport,
}

func runImport(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one file argument, got %d", c.NArg())
	}
	file := c.Args().First()

	groups, err := table.ReadFile(file)
	if err != nil {
		return err
	}
	if groups.Len() == 0 {
		return fmt.Errorf("no test cases found in %s", file)
	}

	client, lg, err := setup(c)
	if err != nil {
		return err
	}
	defer lg.Close()

	projectID := c.Int("project")
	folders := importer.NewReconciler(client, lg)

	// The unassigned group needs a caller-chosen default folder,
	// resolved through the same name-only path as any declared name.
	var defaultFolder *core.Folder
	if name := c.String("folder"); name != "" {
		defaultFolder, err = folders.Resolve(projectID, nil, name)
		if err != nil {
			return fmt.Errorf("failed to prepare default folder %q: %w", name, err)
		}
	}

	imp := importer.New(client, folders, lg)
	sum := imp.Run(projectID, groups, defaultFolder)

	fmt.Printf("Import finished: %d created, %d failed\n", sum.Created, sum.Failed)
	if sum.Created == 0 && sum.Failed > 0 {
		return fmt.Errorf("all %d cases failed to import", sum.Failed)
	}
	return nil
}
