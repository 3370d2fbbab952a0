package models

import "time"

// TemplateLine is a row of one of the frrs.mof_* template tables.
// Nullable text columns scan into pointers.
type TemplateLine struct {
	LineCode           *string `json:"lineCode"`
	LineName           *string `json:"lineName"`
	Code               *string `json:"code"`
	IsTotalLine        *string `json:"isTotalLine"` // boolean or text column, compared as text
	CalculationFormula *string `json:"calculationFormula"`
	NoteRef            *string `json:"noteRef"`
	Type               string  `json:"type"` // company type the line belongs to
}

// ChartOfAccountsEntry is a row of frrs.mof_gl_companies.
type ChartOfAccountsEntry struct {
	Code      string     `json:"code"`
	AccountSM *string    `json:"accountSM"`
	AccountBS *string    `json:"accountBS"`
	AccountPL *string    `json:"accountPL"`
	CreatedBy string     `json:"createdBy"`
	CreatedAt *time.Time `json:"createdAt"`
}
