// Package table implements the flat tabular representation of test
// cases: packing a case (metadata plus ordered steps or precondition
// lines) into fixed-width delimited rows and reversing the packing when
// reading an edited file back.
package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/devicelab-dev/tms-tool/pkg/core"
)

// Delimiter is the field separator of the tabular format.
const Delimiter = ';'

// Column positions. Despite the pre_conditions/expected_results header
// names, colSteps and colResult are the packed payload slot used for
// both step pairs and precondition lines.
const (
	colID = iota
	colTitle
	colState
	colPriority
	colType
	colAutomationStatus
	colDescription
	colPreConditions
	colExpectedResults
	colTemplate
	colSteps
	colResult
	colFolderID
	colFolderName
	colCreatedAt
	colUpdatedAt
	numColumns // named columns; every written row carries one extra blank field
)

// Headers is the fixed header line, in column order. Files additionally
// carry one trailing unnamed column.
var Headers = []string{
	"id", "title", "state", "priority", "type", "automation_status",
	"description", "pre_conditions", "expected_results", "template",
	"steps", "result", "folder_id", "folder_name", "created_at", "updated_at",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func emptyRow() []string {
	return make([]string, numColumns+1)
}

// WriteFile encodes the cases and writes them to path as a UTF-8 file
// with byte-order mark, one header line followed by data rows. The BOM
// is what makes spreadsheet applications detect the encoding.
func WriteFile(path string, cases []core.Case) error {
	f, err := os.Create(path) //#nosec G304 -- user-provided output path
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	w.Comma = Delimiter

	header := append(append(make([]string, 0, numColumns+1), Headers...), "")
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range Encode(cases) {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush export file: %w", err)
	}
	return nil
}

// ReadFile reads a tabular file, skips the header line and decodes the
// data rows into folder groups.
func ReadFile(path string) (*Groups, error) {
	f, err := os.Open(path) //#nosec G304 -- user-provided input file
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if lead, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(lead, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	r := csv.NewReader(br)
	r.Comma = Delimiter
	r.FieldsPerRecord = -1 // short rows are padded by the decoder, not rejected
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}
	if len(rows) > 0 {
		rows = rows[1:] // header line
	}
	return Decode(rows), nil
}
