// Package file serves report templates and charts of accounts from a YAML
// document, for offline runs of the operator CLI.
package file

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/SscSPs/mof_report_service/internal/apperrors"
	"github.com/SscSPs/mof_report_service/internal/core/domain"
	portsrepo "github.com/SscSPs/mof_report_service/internal/core/ports/repositories"
	"gopkg.in/yaml.v2"
)

// document is the YAML layout:
//
//	templates:
//	  <company type>:
//	    BALANCE_SHEET: [ {line_code, line_name, code, is_total_line, formula, note_ref}, ... ]
//	    PL01: [...]
//	charts:
//	  <user id>: [ {code, account_sm, account_bs, account_pl}, ... ]
type document struct {
	Templates map[string]map[domain.ReportKind][]domain.TemplateLine `yaml:"templates"`
	Charts    map[string][]domain.ChartOfAccountsEntry               `yaml:"charts"`
}

type yamlTemplateRepository struct {
	doc document
}

var _ portsrepo.TemplateRepositoryFacade = (*yamlTemplateRepository)(nil)

// NewTemplateRepository parses a YAML document.
func NewTemplateRepository(data []byte) (portsrepo.TemplateRepositoryFacade, error) {
	var doc document
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid template document: %v", apperrors.ErrValidation, err)
	}
	known := make(map[domain.ReportKind]bool, len(domain.TemplateKinds))
	for _, k := range domain.TemplateKinds {
		known[k] = true
	}
	for companyType, kinds := range doc.Templates {
		for kind, lines := range kinds {
			if !known[kind] {
				return nil, fmt.Errorf("%w: unknown report kind %q for company type %q", apperrors.ErrValidation, kind, companyType)
			}
			for i := range lines {
				trimTemplateLine(&lines[i])
			}
		}
	}
	for _, entries := range doc.Charts {
		for i := range entries {
			e := &entries[i]
			e.AccountCode = strings.TrimSpace(e.AccountCode)
			e.SubledgerCode = strings.TrimSpace(e.SubledgerCode)
			e.BalanceSheetCode = strings.TrimSpace(e.BalanceSheetCode)
			e.ProfitLossCode = strings.TrimSpace(e.ProfitLossCode)
		}
	}
	return &yamlTemplateRepository{doc: doc}, nil
}

// trimTemplateLine strips the padding the database mapping strips too.
func trimTemplateLine(l *domain.TemplateLine) {
	l.LineCode = strings.TrimSpace(l.LineCode)
	l.LineName = strings.TrimSpace(l.LineName)
	l.Code = strings.TrimSpace(l.Code)
	l.CalculationFormula = strings.TrimSpace(l.CalculationFormula)
	l.NoteRef = strings.TrimSpace(l.NoteRef)
}

// LoadTemplateRepository reads and parses the YAML document at path.
func LoadTemplateRepository(path string) (portsrepo.TemplateRepositoryFacade, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file %s: %w", path, err)
	}
	return NewTemplateRepository(data)
}

func (r *yamlTemplateRepository) FindTemplate(_ context.Context, kind domain.ReportKind, companyType string) ([]domain.TemplateLine, error) {
	lines := r.doc.Templates[companyType][kind]
	out := make([]domain.TemplateLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (r *yamlTemplateRepository) FindChartOfAccounts(_ context.Context, userID string) ([]domain.ChartOfAccountsEntry, error) {
	entries := r.doc.Charts[userID]
	out := make([]domain.ChartOfAccountsEntry, len(entries))
	copy(out, entries)
	return out, nil
}
