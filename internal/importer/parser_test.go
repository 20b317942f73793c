package importer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/Dev-MiMi/expensetracker/internal/importer"
	"github.com/Dev-MiMi/expensetracker/internal/ledger"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Standard(t *testing.T) {
	csv := `Date,Description,Amount
2026-01-30,ELECTRIC COMPANY,-58.74
2026-01-09,ACME PAYROLL,"1,608.52"
`

	p := importer.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, date(2026, 1, 30), rows[0].Date)
	assert.Equal(t, "ELECTRIC COMPANY", rows[0].Note)
	assert.True(t, decimal.RequireFromString("58.74").Equal(rows[0].Amount))
	assert.Equal(t, ledger.KindExpense, rows[0].Kind)

	assert.Equal(t, date(2026, 1, 9), rows[1].Date)
	assert.Equal(t, "ACME PAYROLL", rows[1].Note)
	assert.True(t, decimal.RequireFromString("1608.52").Equal(rows[1].Amount))
	assert.Equal(t, ledger.KindIncome, rows[1].Kind)
}

func TestParser_StandardWithCategory(t *testing.T) {
	csv := `Date,Description,Category,Amount
2026-01-30,SUPERMARKET,Groceries,-12.30
2026-01-31,UNKNOWN SHOP,Yachts,-5.00
`

	p := importer.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Groceries", rows[0].Category)
	// Unrecognized categories are dropped, not imported verbatim.
	assert.Equal(t, "", rows[1].Category)
}

func TestParser_DebitCredit(t *testing.T) {
	csv := `Date,Description,Debit,Credit
2025-12-16,CORNER CAFE,64.00,
2025-12-31,REFUND ORDER 1234,,47.91
`

	p := importer.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, ledger.KindExpense, rows[0].Kind)
	assert.True(t, decimal.RequireFromString("64").Equal(rows[0].Amount))

	assert.Equal(t, ledger.KindIncome, rows[1].Kind)
	assert.True(t, decimal.RequireFromString("47.91").Equal(rows[1].Amount))
}

func TestParser_BankExportWithPreamble(t *testing.T) {
	csv := `Consultar saldos e movimentos à ordem - 31-01-2026;"=""0000"""
Nome cliente;JOHN DOE

Data mov.;Data-valor;Descrição;Montante;Saldo contabilístico após movimento
30-01-2026;30-01-2026;INSTITUTO GESTAO FINA;-588,74;48.825,46
09-01-2026;09-01-2026;TFI Wise;8.608,52;52.532,78
`

	p := importer.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, date(2026, 1, 30), rows[0].Date)
	assert.Equal(t, "INSTITUTO GESTAO FINA", rows[0].Note)
	assert.True(t, decimal.RequireFromString("588.74").Equal(rows[0].Amount))
	assert.Equal(t, ledger.KindExpense, rows[0].Kind)

	assert.Equal(t, ledger.KindIncome, rows[1].Kind)
	assert.True(t, decimal.RequireFromString("8608.52").Equal(rows[1].Amount))
}

func TestParser_SkipsFooterRows(t *testing.T) {
	csv := `Date,Description,Amount
2026-01-30,SHOP,-10.00
,,
Total,,-10.00
`

	p := importer.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestParser_Windows1252Statement(t *testing.T) {
	utf8CSV := `Data mov.;Data-valor;Descrição;Montante
30-01-2026;30-01-2026;PADARIA SÃO JOÃO;-5,20
`

	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	p := importer.NewParser()
	rows, err := p.Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "PADARIA SÃO JOÃO", rows[0].Note)
}

func TestParser_NoMatchingFormat(t *testing.T) {
	p := importer.NewParser()
	_, err := p.Parse(strings.NewReader("just,some,random\nnoise,without,headers\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no matching statement format")
}
