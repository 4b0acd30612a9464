package importer

import (
	"github.com/devicelab-dev/tms-tool/pkg/core"
	"github.com/devicelab-dev/tms-tool/pkg/logger"
	"github.com/devicelab-dev/tms-tool/pkg/table"
)

// CaseService is the slice of the TMS client the importer needs.
type CaseService interface {
	// CreateCase creates the case record (metadata only, no steps)
	// and returns the new case id.
	CreateCase(folderID int, c *core.Case) (int, error)
	UpdateSteps(caseID int, steps []core.Step) error
}

// Summary accumulates per-case outcomes of one import run.
type Summary struct {
	Created int // cases that exist remotely, with or without their steps
	Failed  int // cases that could not be created
}

// Importer pushes decoded folder groups into a project, one case at a
// time in source order. Nothing here aborts the batch: a group without
// a target folder or a failed create is counted and skipped.
type Importer struct {
	cases   CaseService
	folders *Reconciler
	log     *logger.Logger
}

// New creates an importer.
func New(cases CaseService, folders *Reconciler, log *logger.Logger) *Importer {
	return &Importer{cases: cases, folders: folders, log: log}
}

// Run imports every folder group of the decoded file into the project.
// The unassigned group goes to defaultFolder; when that is nil the
// group is skipped entirely and each of its cases counts as failed.
func (imp *Importer) Run(projectID int, groups *table.Groups, defaultFolder *core.Folder) Summary {
	var sum Summary

	for _, key := range groups.Keys() {
		cases := groups.Cases(key)

		target := imp.targetFolder(projectID, key, defaultFolder)
		if target == nil {
			imp.log.Error("no target folder for group %q: skipping %d cases", key, len(cases))
			sum.Failed += len(cases)
			continue
		}

		for i := range cases {
			if imp.importCase(target, &cases[i]) {
				sum.Created++
			} else {
				sum.Failed++
			}
		}
	}

	return sum
}

func (imp *Importer) targetFolder(projectID int, key string, defaultFolder *core.Folder) *core.Folder {
	if key == core.KeyUnassigned {
		return defaultFolder
	}
	name, id := core.ParseFolderKey(key)
	folder, err := imp.folders.Resolve(projectID, id, name)
	if err != nil {
		imp.log.Error("failed to resolve folder for group %q: %v", key, err)
		return nil
	}
	return folder
}

func (imp *Importer) importCase(target *core.Folder, c *core.Case) bool {
	caseID, err := imp.cases.CreateCase(target.ID, c)
	if err != nil {
		imp.log.Error("failed to create case %q: %v", c.Title, err)
		return false
	}

	if c.IsStepwise() && len(c.Steps) > 0 {
		// The case already exists remotely, so a failed step push
		// still counts as a success, just without steps.
		if err := imp.cases.UpdateSteps(caseID, c.Steps); err != nil {
			imp.log.Warn("case %q created without steps: %v", c.Title, err)
		}
	}

	imp.log.Debug("imported case %q into folder %q", c.Title, target.Name)
	return true
}
