package domain_test

import "github.com/shopspring/decimal"

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// decimalPtr returns a pointer to the parsed decimal.
func decimalPtr(s string) *decimal.Decimal {
	d := mustDecimal(s)
	return &d
}
