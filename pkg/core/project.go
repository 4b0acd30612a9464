package core

// Folder is a case folder within a project.
type Folder struct {
	ID     int
	Name   string
	Detail string
}

// Project is a TMS project the user has access to.
type Project struct {
	ID        int
	Name      string
	Detail    string
	IsPublic  bool
	CreatedAt string
}

// CaseRef is a shallow case reference as it appears in the project tree.
type CaseRef struct {
	ID    int
	Title string
}

// TreeFolder is a folder node of the project tree with its case refs.
type TreeFolder struct {
	ID     int
	Name   string
	Detail string
	Cases  []CaseRef
}

// ProjectTree is the folder/case structure of a single project.
type ProjectTree struct {
	Folders []TreeFolder
}

// CaseCount returns the total number of cases across all folders.
func (t *ProjectTree) CaseCount() int {
	n := 0
	for _, f := range t.Folders {
		n += len(f.Cases)
	}
	return n
}
