package enums

import "fmt"

// LedgerTransactionType maps to the stock_ledger.transaction_type column.
type LedgerTransactionType string

const (
	LedgerTransactionTypeAdd        LedgerTransactionType = "add"
	LedgerTransactionTypeRemove     LedgerTransactionType = "remove"
	LedgerTransactionTypeAdjustment LedgerTransactionType = "adjustment"
	LedgerTransactionTypeSale       LedgerTransactionType = "sale"
	LedgerTransactionTypeTransfer   LedgerTransactionType = "transfer"
	LedgerTransactionTypeWriteOff   LedgerTransactionType = "write_off"
)

var validLedgerTransactionTypes = []LedgerTransactionType{
	LedgerTransactionTypeAdd,
	LedgerTransactionTypeRemove,
	LedgerTransactionTypeAdjustment,
	LedgerTransactionTypeSale,
	LedgerTransactionTypeTransfer,
	LedgerTransactionTypeWriteOff,
}

// IsValid reports whether the value matches the canonical transaction type enum.
func (t LedgerTransactionType) IsValid() bool {
	for _, candidate := range validLedgerTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseLedgerTransactionType converts raw input into LedgerTransactionType.
func ParseLedgerTransactionType(value string) (LedgerTransactionType, error) {
	for _, candidate := range validLedgerTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid ledger transaction type %q", value)
}
