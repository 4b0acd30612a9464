// Package importer reconciles declared folder identities against the
// live folder set and imports decoded case groups into a project.
package importer

import (
	"fmt"
	"time"

	"github.com/devicelab-dev/tms-tool/pkg/core"
	"github.com/devicelab-dev/tms-tool/pkg/logger"
)

// FolderService is the slice of the TMS client the reconciler needs.
type FolderService interface {
	// Folder fetches a folder by id, (nil, nil) when it does not exist.
	Folder(folderID int) (*core.Folder, error)
	Folders(projectID int) ([]core.Folder, error)
	CreateFolder(projectID int, name, detail string, parentID *int) (*core.Folder, error)
}

type cacheKey struct {
	projectID int
	folderID  int
}

// Reconciler resolves a declared (id, name) pair to a live folder,
// creating one when the id is unknown or its name no longer matches.
// Results are memoized by (project, folder id) for the duration of one
// import run; the cache is never persisted.
type Reconciler struct {
	folders FolderService
	log     *logger.Logger
	cache   map[cacheKey]*core.Folder
}

// NewReconciler creates a reconciler with an empty per-run cache.
func NewReconciler(folders FolderService, log *logger.Logger) *Reconciler {
	return &Reconciler{
		folders: folders,
		log:     log,
		cache:   make(map[cacheKey]*core.Folder),
	}
}

// Resolve returns the folder the declared identity maps to. Identity
// mismatches never fail: a missing id or a name mismatch resolves to
// folder creation, never to silent reuse of an unrelated folder. The
// returned error is non-nil only when the remote create itself fails.
func (r *Reconciler) Resolve(projectID int, declaredID *int, declaredName string) (*core.Folder, error) {
	if declaredID == nil {
		return r.resolveByName(projectID, declaredName)
	}
	if f, ok := r.cache[cacheKey{projectID, *declaredID}]; ok {
		return f, nil
	}
	return r.resolveByID(projectID, *declaredID, declaredName)
}

func (r *Reconciler) resolveByID(projectID, declaredID int, declaredName string) (*core.Folder, error) {
	folder, err := r.folders.Folder(declaredID)
	if err != nil {
		r.log.Warn("folder %d lookup failed: %v", declaredID, err)
		folder = nil
	}

	if folder != nil {
		// A blank declared name cannot contradict the live one, so
		// the fetched folder is reused as-is.
		if declaredName == "" || folder.Name == declaredName {
			r.remember(projectID, declaredID, folder)
			return folder, nil
		}
		r.log.Warn("folder %d is named %q, not %q: creating a new folder", declaredID, folder.Name, declaredName)
	} else {
		r.log.Warn("folder %d not found: creating %q", declaredID, declaredName)
	}

	created, err := r.folders.CreateFolder(projectID, declaredName, autoDetail(), nil)
	if err != nil {
		return nil, err
	}
	// Cache under the new folder's id, and under the declared id so an
	// identical declaration later in the run maps to the same folder.
	r.remember(projectID, created.ID, created)
	r.remember(projectID, declaredID, created)
	return created, nil
}

func (r *Reconciler) resolveByName(projectID int, name string) (*core.Folder, error) {
	byName, err := r.ListByName(projectID)
	if err != nil {
		r.log.Warn("folder listing for project %d failed: %v", projectID, err)
		byName = nil
	}
	if f, ok := byName[name]; ok {
		r.remember(projectID, f.ID, f)
		return f, nil
	}

	created, err := r.folders.CreateFolder(projectID, name, autoDetail(), nil)
	if err != nil {
		return nil, err
	}
	r.remember(projectID, created.ID, created)
	return created, nil
}

// ListByName lists the project's folders keyed by name. The listing is
// computed fresh on every call; only resolved folders are memoized.
func (r *Reconciler) ListByName(projectID int) (map[string]*core.Folder, error) {
	folders, err := r.folders.Folders(projectID)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*core.Folder, len(folders))
	for i := range folders {
		if _, ok := byName[folders[i].Name]; !ok {
			byName[folders[i].Name] = &folders[i]
		}
	}
	return byName, nil
}

func (r *Reconciler) remember(projectID, folderID int, f *core.Folder) {
	r.cache[cacheKey{projectID, folderID}] = f
}

func autoDetail() string {
	return fmt.Sprintf("Created by tms-tool import on %s", time.Now().Format("2006-01-02 15:04:05"))
}
