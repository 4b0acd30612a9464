package table

import (
	"testing"

	"github.com/devicelab-dev/tms-tool/pkg/core"
)

func intPtr(n int) *int { return &n }

func TestEncode_StepwiseCase(t *testing.T) {
	cases := []core.Case{
		{
			ID:       "5",
			Title:    "Login",
			Priority: 1,
			Template: core.TemplateStepwise,
			Steps: []core.Step{
				{StepNo: 1, Step: "Open page", Result: "Page loads"},
				{StepNo: 2, Step: "Click login", Result: "Form shown"},
				{StepNo: 3, Step: "Submit", Result: "Logged in"},
			},
			FolderID:   intPtr(9),
			FolderName: "Auth",
		},
	}

	rows := Encode(cases)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows (header + 2 continuations), got %d", len(rows))
	}

	header := rows[0]
	if header[colID] != "5" || header[colTitle] != "Login" {
		t.Errorf("unexpected header identity: id=%q title=%q", header[colID], header[colTitle])
	}
	if header[colTemplate] != "1" {
		t.Errorf("expected template column 1, got %q", header[colTemplate])
	}
	if header[colSteps] != "1. Open page" || header[colResult] != "Page loads" {
		t.Errorf("first step should ride on the header row, got %q / %q", header[colSteps], header[colResult])
	}
	if header[colFolderID] != "9" || header[colFolderName] != "Auth" {
		t.Errorf("unexpected folder columns: %q / %q", header[colFolderID], header[colFolderName])
	}

	for i, want := range []struct{ step, result string }{
		{"2. Click login", "Form shown"},
		{"3. Submit", "Logged in"},
	} {
		cont := rows[i+1]
		if cont[colID] != "" {
			t.Errorf("continuation row %d must have a blank id, got %q", i+1, cont[colID])
		}
		if cont[colSteps] != want.step || cont[colResult] != want.result {
			t.Errorf("continuation row %d = %q / %q, want %q / %q",
				i+1, cont[colSteps], cont[colResult], want.step, want.result)
		}
	}
}

func TestEncode_StepTextAlreadyNumbered(t *testing.T) {
	// Decoded cases carry the "N. " prefix in their step text; encoding
	// them again must not double it.
	cases := []core.Case{
		{
			Title:    "Login",
			Template: core.TemplateStepwise,
			Steps:    []core.Step{{StepNo: 1, Step: "1. Open page", Result: "Page loads"}},
		},
	}

	rows := Encode(cases)
	if rows[0][colSteps] != "1. Open page" {
		t.Errorf("expected %q, got %q", "1. Open page", rows[0][colSteps])
	}
}

func TestEncode_SimpleCaseMultilinePreconditions(t *testing.T) {
	cases := []core.Case{
		{
			ID:              "2",
			Title:           "Profile",
			Template:        core.TemplateSimple,
			PreConditions:   "User exists\nUser is verified\n\nSession active",
			ExpectedResults: "Profile visible",
		},
	}

	rows := Encode(cases)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows (blank precondition lines are dropped), got %d", len(rows))
	}

	if rows[0][colSteps] != "User exists" || rows[0][colResult] != "Profile visible" {
		t.Errorf("header payload = %q / %q", rows[0][colSteps], rows[0][colResult])
	}
	if rows[1][colSteps] != "User is verified" || rows[1][colResult] != "" {
		t.Errorf("continuation 1 = %q / %q, want precondition with blank result", rows[1][colSteps], rows[1][colResult])
	}
	if rows[2][colSteps] != "Session active" {
		t.Errorf("continuation 2 = %q", rows[2][colSteps])
	}
}

func TestEncode_CaseWithoutPayload(t *testing.T) {
	cases := []core.Case{
		{
			ID:              "3",
			Title:           "Empty",
			ExpectedResults: "Nothing happens",
		},
	}

	rows := Encode(cases)
	if len(rows) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(rows))
	}
	if rows[0][colSteps] != "" {
		t.Errorf("step column should be empty, got %q", rows[0][colSteps])
	}
	if rows[0][colResult] != "Nothing happens" {
		t.Errorf("expected results alone in the result column, got %q", rows[0][colResult])
	}
}

func TestEncode_RowWidth(t *testing.T) {
	rows := Encode([]core.Case{{ID: "1", Title: "T"}})
	for i, row := range rows {
		if len(row) != numColumns+1 {
			t.Errorf("row %d has %d fields, want %d (named columns plus trailing blank)",
				i, len(row), numColumns+1)
		}
	}
}
