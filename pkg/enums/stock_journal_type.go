package enums

import "fmt"

// StockJournalType flags the direction of an inventory mutation.
type StockJournalType string

const (
	StockJournalAddition    StockJournalType = "addition"
	StockJournalSubtraction StockJournalType = "subtraction"
)

func (s StockJournalType) String() string { return string(s) }

// IsValid reports whether the value is a known StockJournalType.
func (s StockJournalType) IsValid() bool {
	return s == StockJournalAddition || s == StockJournalSubtraction
}

// Sign returns the multiplier applied to the journal quantity when replaying
// entries against an inventory row.
func (s StockJournalType) Sign() int {
	if s == StockJournalSubtraction {
		return -1
	}
	return 1
}

// ParseStockJournalType converts raw input into a StockJournalType.
func ParseStockJournalType(value string) (StockJournalType, error) {
	switch StockJournalType(value) {
	case StockJournalAddition:
		return StockJournalAddition, nil
	case StockJournalSubtraction:
		return StockJournalSubtraction, nil
	}
	return "", fmt.Errorf("invalid stock journal type %q", value)
}
