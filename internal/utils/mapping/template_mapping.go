package mapping

import (
	"strings"

	"github.com/SscSPs/mof_report_service/internal/core/domain"
	"github.com/SscSPs/mof_report_service/internal/models"
)

func text(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// ToDomainTemplateLine converts a template row. Only a value reading TRUE
// (any case) marks a total line.
func ToDomainTemplateLine(m models.TemplateLine) domain.TemplateLine {
	return domain.TemplateLine{
		LineCode:           text(m.LineCode),
		LineName:           text(m.LineName),
		Code:               text(m.Code),
		IsTotalLine:        strings.EqualFold(text(m.IsTotalLine), "true"),
		CalculationFormula: text(m.CalculationFormula),
		NoteRef:            text(m.NoteRef),
	}
}

// ToDomainTemplateLineSlice converts a slice of template rows.
func ToDomainTemplateLineSlice(ms []models.TemplateLine) []domain.TemplateLine {
	out := make([]domain.TemplateLine, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTemplateLine(m)
	}
	return out
}

// ToDomainChartOfAccountsEntry converts a chart of accounts row.
func ToDomainChartOfAccountsEntry(m models.ChartOfAccountsEntry) domain.ChartOfAccountsEntry {
	return domain.ChartOfAccountsEntry{
		AccountCode:      strings.TrimSpace(m.Code),
		SubledgerCode:    text(m.AccountSM),
		BalanceSheetCode: text(m.AccountBS),
		ProfitLossCode:   text(m.AccountPL),
	}
}

// ToDomainChartOfAccounts converts a slice of chart of accounts rows.
func ToDomainChartOfAccounts(ms []models.ChartOfAccountsEntry) []domain.ChartOfAccountsEntry {
	out := make([]domain.ChartOfAccountsEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainChartOfAccountsEntry(m)
	}
	return out
}
