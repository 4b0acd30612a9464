package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var projectsCommand = &cli.Command{
	Name:  "projects",
	Usage: "Show the user's projects with folder and case counts",
	Description: `List every project the signed-in user can access, with its folder
structure and case counts.

Example:
  tms-tool projects`,
	Action: runProjects,
}

func runProjects(c *cli.Context) error {
	client, lg, err := setup(c)
	if err != nil {
		return err
	}
	defer lg.Close()

	projects, err := client.Projects()
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("No projects available")
		return nil
	}

	for _, p := range projects {
		fmt.Printf("%s (ID: %d)\n", p.Name, p.ID)
		if p.Detail != "" {
			fmt.Printf("  Detail:  %s\n", p.Detail)
		}
		fmt.Printf("  Public:  %v\n", p.IsPublic)
		if p.CreatedAt != "" {
			fmt.Printf("  Created: %s\n", p.CreatedAt)
		}

		tree, err := client.ProjectTree(p.ID)
		if err != nil {
			lg.Warn("failed to load structure of project %d: %v", p.ID, err)
			fmt.Println()
			continue
		}

		fmt.Printf("  Folders: %d, cases: %d\n", len(tree.Folders), tree.CaseCount())
		for _, f := range tree.Folders {
			fmt.Printf("    - %s (ID: %d): %d cases\n", f.Name, f.ID, len(f.Cases))
		}
		fmt.Println()
	}
	return nil
}
