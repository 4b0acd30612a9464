// Package core defines the shared domain records for the TMS tool.
package core

// Template selects how a case's payload rows are interpreted.
type Template int

const (
	TemplateSimple   Template = 0 // free-text preconditions
	TemplateStepwise Template = 1 // ordered step/result pairs
)

// String returns the string representation of Template.
func (t Template) String() string {
	switch t {
	case TemplateSimple:
		return "simple"
	case TemplateStepwise:
		return "stepwise"
	default:
		return "unknown"
	}
}

// Step is a single step/result pair of a stepwise case.
type Step struct {
	StepNo int
	Step   string
	Result string
}

// Case is a test case record: metadata plus either an ordered step list
// (stepwise template) or free-text preconditions (simple template).
type Case struct {
	// ID is the external identifier, present only for previously
	// exported cases. Kept as a string: it is passthrough data and is
	// never sent back on create.
	ID    string
	Title string

	// Small integer enums, passed through to the TMS as-is.
	State            int
	Priority         int
	Type             int
	AutomationStatus int

	Description     string
	Template        Template
	PreConditions   string // may contain embedded newlines
	ExpectedResults string

	// Steps is populated only when Template is TemplateStepwise,
	// ordered by StepNo.
	Steps []Step

	// Declared destination folder. FolderID is nil when the folder id
	// column is blank or non-numeric.
	FolderID   *int
	FolderName string

	// Opaque timestamps, passthrough only.
	CreatedAt string
	UpdatedAt string
}

// IsStepwise reports whether the case carries a step list.
func (c *Case) IsStepwise() bool {
	return c.Template == TemplateStepwise
}
