// Package exporter fetches a project's cases with full detail and
// writes them as a tabular export file.
package exporter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/devicelab-dev/tms-tool/pkg/core"
	"github.com/devicelab-dev/tms-tool/pkg/logger"
	"github.com/devicelab-dev/tms-tool/pkg/table"
)

// ProjectService is the slice of the TMS client the exporter needs.
type ProjectService interface {
	ProjectTree(projectID int) (*core.ProjectTree, error)
	Case(caseID int) (*core.Case, error)
}

// Exporter writes a project's cases to a tabular file.
type Exporter struct {
	projects ProjectService
	log      *logger.Logger
}

// New creates an exporter.
func New(projects ProjectService, log *logger.Logger) *Exporter {
	return &Exporter{projects: projects, log: log}
}

// Collect fetches every case of the project with full detail, stamping
// each with the id and name of its containing folder. Cases whose
// detail fetch fails are logged and skipped.
func (e *Exporter) Collect(projectID int) ([]core.Case, error) {
	tree, err := e.projects.ProjectTree(projectID)
	if err != nil {
		return nil, err
	}

	var cases []core.Case
	for _, folder := range tree.Folders {
		for _, ref := range folder.Cases {
			detail, err := e.projects.Case(ref.ID)
			if err != nil {
				e.log.Warn("skipping case %d: %v", ref.ID, err)
				continue
			}
			folderID := folder.ID
			detail.FolderID = &folderID
			detail.FolderName = folder.Name
			cases = append(cases, *detail)
		}
	}
	return cases, nil
}

// Export collects the project's cases and writes them into dir as
// testcases_export_{project}_{timestamp}.csv. Returns the file path
// and the number of exported cases.
func (e *Exporter) Export(projectID int, projectName, dir string) (string, int, error) {
	cases, err := e.Collect(projectID)
	if err != nil {
		return "", 0, err
	}
	if len(cases) == 0 {
		return "", 0, errors.New("project has no test cases")
	}

	name := fmt.Sprintf("testcases_export_%s_%s.csv",
		sanitizeName(projectName), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	if err := table.WriteFile(path, cases); err != nil {
		return "", 0, err
	}
	e.log.Info("exported %d cases to %s", len(cases), path)
	return path, len(cases), nil
}

// sanitizeName keeps the project name filesystem-safe.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}
