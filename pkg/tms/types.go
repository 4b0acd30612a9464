package tms

import (
	"sort"
	"strconv"

	"github.com/devicelab-dev/tms-tool/pkg/core"
)

// Wire records exchanged with the TMS API. Dynamic payloads are
// validated and coerced here once; everything past this boundary uses
// the typed records from pkg/core.

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	AccessToken string `json:"access_token"`
}

type wireProject struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Detail    string `json:"detail"`
	IsPublic  bool   `json:"isPublic"`
	CreatedAt string `json:"createdAt"`
}

type wireFolder struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Detail string `json:"detail"`
}

type createFolderRequest struct {
	Name           string `json:"name"`
	Detail         string `json:"detail"`
	ParentFolderID *int   `json:"parentFolderId"`
}

type wireCaseRef struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type wireTreeFolder struct {
	ID     int           `json:"id"`
	Name   string        `json:"name"`
	Detail string        `json:"detail"`
	Cases  []wireCaseRef `json:"Cases"`
}

type wireTree struct {
	Folders []wireTreeFolder `json:"Folders"`
}

type wireCaseSteps struct {
	StepNo int `json:"stepNo"`
}

type wireStep struct {
	Step      string        `json:"step"`
	Result    string        `json:"result"`
	CaseSteps wireCaseSteps `json:"caseSteps"`
}

type wireCase struct {
	ID               int        `json:"id"`
	Title            string     `json:"title"`
	State            int        `json:"state"`
	Priority         int        `json:"priority"`
	Type             int        `json:"type"`
	AutomationStatus int        `json:"automationStatus"`
	Description      string     `json:"description"`
	Template         int        `json:"template"`
	PreConditions    string     `json:"preConditions"`
	ExpectedResults  string     `json:"expectedResults"`
	CreatedAt        string     `json:"createdAt"`
	UpdatedAt        string     `json:"updatedAt"`
	Steps            []wireStep `json:"Steps"`
}

type createCaseRequest struct {
	Title            string `json:"title"`
	State            int    `json:"state"`
	Priority         int    `json:"priority"`
	Type             int    `json:"type"`
	AutomationStatus int    `json:"automationStatus"`
	Description      string `json:"description"`
	Template         int    `json:"template"`
	PreConditions    string `json:"preConditions"`
	ExpectedResults  string `json:"expectedResults"`
}

// updateStep is one entry of the steps/update payload. New steps carry
// id 0, a synthetic local uid and the "new" edit state.
type updateStep struct {
	ID        int           `json:"id"`
	Step      string        `json:"step"`
	Result    string        `json:"result"`
	UID       string        `json:"uid"`
	EditState string        `json:"editState"`
	CaseSteps wireCaseSteps `json:"caseSteps"`
}

func (w *wireFolder) toFolder() *core.Folder {
	return &core.Folder{ID: w.ID, Name: w.Name, Detail: w.Detail}
}

func (w *wireCase) toCase() *core.Case {
	c := &core.Case{
		Title:            w.Title,
		State:            w.State,
		Priority:         w.Priority,
		Type:             w.Type,
		AutomationStatus: w.AutomationStatus,
		Description:      w.Description,
		Template:         core.Template(w.Template),
		PreConditions:    w.PreConditions,
		ExpectedResults:  w.ExpectedResults,
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	}
	if w.ID != 0 {
		c.ID = strconv.Itoa(w.ID)
	}
	for _, s := range w.Steps {
		c.Steps = append(c.Steps, core.Step{
			StepNo: s.CaseSteps.StepNo,
			Step:   s.Step,
			Result: s.Result,
		})
	}
	sort.SliceStable(c.Steps, func(i, j int) bool {
		return c.Steps[i].StepNo < c.Steps[j].StepNo
	})
	return c
}
