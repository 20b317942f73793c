package importer

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "Amount" with value "-10.00").
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of one statement export format.
// Supporting a new bank is just adding a Profile to the profiles slice.
type Profile struct {
	Name        string
	DateCol     string
	DescCol     string
	CategoryCol string // optional, looked up when non-empty
	AmountMode  amountMode
	AmountCol   string // used when AmountMode == amountSingle
	DebitCol    string // used when AmountMode == amountSplit
	CreditCol   string // used when AmountMode == amountSplit
	DateLayouts []string
}

// requiredCols returns the column names that must be present for this
// profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is the ordered list of export formats tried during auto-detection.
// More specific profiles come first to avoid false matches.
var profiles = []Profile{
	{
		Name:        "debit-credit",
		DateCol:     "Date",
		DescCol:     "Description",
		CategoryCol: "Category",
		AmountMode:  amountSplit,
		DebitCol:    "Debit",
		CreditCol:   "Credit",
		DateLayouts: []string{"2006-01-02", "02/01/2006", "01/02/2006"},
	},
	{
		Name:        "standard",
		DateCol:     "Date",
		DescCol:     "Description",
		CategoryCol: "Category",
		AmountMode:  amountSingle,
		AmountCol:   "Amount",
		DateLayouts: []string{"2006-01-02", "02/01/2006", "01/02/2006"},
	},
	{
		Name:        "cgd",
		DateCol:     "Data mov.",
		DescCol:     "Descrição",
		AmountMode:  amountSingle,
		AmountCol:   "Montante",
		DateLayouts: []string{"02-01-2006"},
	},
}
