package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dev-MiMi/expensetracker/internal/encoding"
	"github.com/Dev-MiMi/expensetracker/internal/ledger"
	"github.com/Dev-MiMi/expensetracker/internal/record"
)

// Parser reads bank statement CSV exports and produces record params.
// It auto-detects which format is being used by matching column headers
// against known profiles, and tolerates preamble rows above the header.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]record.CreateParams, error) {
	utf8r, err := encoding.Normalize(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching statement format: expected a header with date, description and amount columns")
	}

	return parseRows(profile, colMap, rows[headerIdx+1:], headerIdx+1)
}

// sniffDelimiter picks the CSV separator from the first non-empty line.
func sniffDelimiter(data []byte) rune {
	line, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}

	return ','
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts records from data rows using the matched profile.
// headerRowNum is the 0-based index of the header in the original file.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]record.CreateParams, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	categoryIdx := -1
	if p.CategoryCol != "" {
		if i, ok := cols[p.CategoryCol]; ok {
			categoryIdx = i
		}
	}

	var params []record.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		date, ok := parseDate(p, row, dateIdx)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, kind, ok := parseRowAmount(p, cols, row)
		if !ok {
			continue
		}

		category := ""
		if categoryIdx >= 0 {
			if c := cellValue(row, categoryIdx); record.ValidCategory(c) {
				category = c
			}
		}

		params = append(params, record.CreateParams{
			Kind:     kind,
			Category: category,
			Amount:   amount,
			Note:     desc,
			Date:     date,
		})
	}

	return params, nil
}

// parseDate tries the profile's layouts against the given cell.
// Returns false for empty cells or unparseable values (footer rows, etc).
func parseDate(p *Profile, row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range p.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseRowAmount extracts the amount and record kind based on the profile's
// amount mode.
func parseRowAmount(p *Profile, cols colIndex, row []string) (decimal.Decimal, ledger.Kind, bool) {
	switch p.AmountMode {
	case amountSingle:
		return parseSingleAmount(row, cols[p.AmountCol])
	case amountSplit:
		return parseSplitAmount(row, cols[p.DebitCol], cols[p.CreditCol])
	}

	return decimal.Decimal{}, "", false
}

func parseSingleAmount(row []string, idx int) (decimal.Decimal, ledger.Kind, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return decimal.Decimal{}, "", false
	}

	d, err := parseAmount(s)
	if err != nil || d.IsZero() {
		return decimal.Decimal{}, "", false
	}

	if d.IsNegative() {
		return d.Neg(), ledger.KindExpense, true
	}

	return d, ledger.KindIncome, true
}

func parseSplitAmount(row []string, debitIdx, creditIdx int) (decimal.Decimal, ledger.Kind, bool) {
	if s := cellValue(row, debitIdx); s != "" {
		if d, err := parseAmount(s); err == nil && !d.IsZero() {
			return d.Abs(), ledger.KindExpense, true
		}
	}

	if s := cellValue(row, creditIdx); s != "" {
		if d, err := parseAmount(s); err == nil && !d.IsZero() {
			return d.Abs(), ledger.KindIncome, true
		}
	}

	return decimal.Decimal{}, "", false
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
