package table

import (
	"strconv"
	"strings"

	"github.com/devicelab-dev/tms-tool/pkg/core"
)

// Groups holds decoded cases bucketed by folder key, preserving both the
// order in which keys first appear in the file and the file order of
// cases within each key.
type Groups struct {
	keys  []string
	cases map[string][]core.Case
}

// Keys returns the folder keys in file order.
func (g *Groups) Keys() []string {
	return g.keys
}

// Cases returns the cases of one folder key in file order.
func (g *Groups) Cases(key string) []core.Case {
	return g.cases[key]
}

// Len returns the total number of cases across all groups.
func (g *Groups) Len() int {
	n := 0
	for _, cs := range g.cases {
		n += len(cs)
	}
	return n
}

func (g *Groups) add(c core.Case) {
	key := core.FolderKey(c.FolderID, c.FolderName)
	if _, ok := g.cases[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.cases[key] = append(g.cases[key], c)
}

// Decode parses data rows (header line excluded) back into cases. A row
// with a non-blank id column starts a new case; a row with a blank id
// column is a continuation carrying one extra step or precondition line
// for the case started above it. Continuation rows before any header
// row are dropped.
func Decode(rows [][]string) *Groups {
	groups := &Groups{cases: make(map[string][]core.Case)}

	var current *core.Case
	flush := func() {
		if current != nil {
			groups.add(*current)
			current = nil
		}
	}

	for _, row := range rows {
		row = padRow(row)

		if strings.TrimSpace(row[colID]) != "" {
			flush()
			c := decodeHeaderRow(row)
			current = &c
			continue
		}

		if current == nil {
			continue
		}
		payload := strings.TrimSpace(row[colSteps])
		if payload == "" {
			continue
		}
		if current.IsStepwise() {
			current.Steps = append(current.Steps, core.Step{
				StepNo: len(current.Steps) + 1,
				Step:   payload,
				Result: strings.TrimSpace(row[colResult]),
			})
		} else if current.PreConditions != "" {
			current.PreConditions += "\n" + payload
		} else {
			current.PreConditions = payload
		}
	}
	flush()

	return groups
}

func decodeHeaderRow(row []string) core.Case {
	c := core.Case{
		ID:               strings.TrimSpace(row[colID]),
		Title:            strings.TrimSpace(row[colTitle]),
		State:            atoiOr(row[colState], 0),
		Priority:         atoiOr(row[colPriority], 1),
		Type:             atoiOr(row[colType], 0),
		AutomationStatus: atoiOr(row[colAutomationStatus], 0),
		Description:      strings.TrimSpace(row[colDescription]),
		Template:         core.Template(atoiOr(row[colTemplate], 0)),
		FolderName:       strings.TrimSpace(row[colFolderName]),
		CreatedAt:        strings.TrimSpace(row[colCreatedAt]),
		UpdatedAt:        strings.TrimSpace(row[colUpdatedAt]),
	}

	// Folder id only if numeric, else left unset.
	if v := strings.TrimSpace(row[colFolderID]); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.FolderID = &n
		}
	}

	// Seed the first payload item according to the template. For a
	// stepwise case the result column belongs to the first step, for a
	// simple case it holds the expected results.
	payload := strings.TrimSpace(row[colSteps])
	result := strings.TrimSpace(row[colResult])
	if c.IsStepwise() {
		if payload != "" {
			c.Steps = append(c.Steps, core.Step{StepNo: 1, Step: payload, Result: result})
		}
	} else {
		c.PreConditions = payload
		c.ExpectedResults = result
	}

	return c
}

// padRow right-pads short rows with empty values so that edited files
// with trailing columns cut off still decode.
func padRow(row []string) []string {
	if len(row) >= numColumns {
		return row
	}
	padded := make([]string, numColumns)
	copy(padded, row)
	return padded
}

// atoiOr coerces an enum cell to an integer, falling back to the column
// default when the cell is blank or not a number.
func atoiOr(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
