package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/devicelab-dev/tms-tool/pkg/core"
)

// Encode serializes cases into flat rows, header row first per case
// followed by one continuation row per remaining payload item. A case
// with no steps and no multi-line preconditions emits exactly one row.
func Encode(cases []core.Case) [][]string {
	rows := make([][]string, 0, len(cases))
	for i := range cases {
		rows = append(rows, encodeCase(&cases[i])...)
	}
	return rows
}

func encodeCase(c *core.Case) [][]string {
	row := emptyRow()
	row[colID] = c.ID
	row[colTitle] = c.Title
	row[colState] = strconv.Itoa(c.State)
	row[colPriority] = strconv.Itoa(c.Priority)
	row[colType] = strconv.Itoa(c.Type)
	row[colAutomationStatus] = strconv.Itoa(c.AutomationStatus)
	row[colDescription] = c.Description
	row[colTemplate] = strconv.Itoa(int(c.Template))
	if c.FolderID != nil {
		row[colFolderID] = strconv.Itoa(*c.FolderID)
	}
	row[colFolderName] = c.FolderName
	row[colCreatedAt] = c.CreatedAt
	row[colUpdatedAt] = c.UpdatedAt

	rows := [][]string{row}

	switch {
	case c.IsStepwise() && len(c.Steps) > 0:
		// First step rides on the header row, the rest become
		// continuation rows.
		row[colSteps] = formatStep(c.Steps[0])
		row[colResult] = c.Steps[0].Result
		for _, s := range c.Steps[1:] {
			cont := emptyRow()
			cont[colSteps] = formatStep(s)
			cont[colResult] = s.Result
			rows = append(rows, cont)
		}

	case c.PreConditions != "":
		// Preconditions are split on newline: first line on the
		// header row next to the expected results, remaining
		// non-blank lines as continuation rows with a blank result.
		lines := strings.Split(c.PreConditions, "\n")
		row[colSteps] = lines[0]
		row[colResult] = c.ExpectedResults
		for _, line := range lines[1:] {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			cont := emptyRow()
			cont[colSteps] = line
			rows = append(rows, cont)
		}

	default:
		row[colResult] = c.ExpectedResults
	}

	return rows
}

// formatStep renders a step cell as "{stepNo}. {text}". Decoded cases
// already carry the number prefix in their step text, so re-encoding
// must not prefix twice.
func formatStep(s core.Step) string {
	prefix := fmt.Sprintf("%d. ", s.StepNo)
	if strings.HasPrefix(s.Step, prefix) {
		return s.Step
	}
	return prefix + s.Step
}
