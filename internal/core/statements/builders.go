package statements

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/mof_report_service/internal/apperrors"
	"github.com/SscSPs/mof_report_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Balance sheet grand totals: total assets and total liabilities plus equity.
const (
	TotalAssetsCode             = "270"
	TotalLiabilitiesEquityCode  = "440"
	liabilitiesEquityCodeCutoff = 300
)

// Engine builds the statement set. It holds configuration only and is safe
// for concurrent use.
type Engine struct {
	ordering          Ordering
	closingNetDetails bool
	logger            *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithOrdering sets how total lines are sequenced.
func WithOrdering(o Ordering) EngineOption {
	return func(e *Engine) {
		e.ordering = o
	}
}

// WithClosingNetDetails makes balance sheet detail lines without DUNO/DUCO
// terms take the closing net of their code instead of 0.
func WithClosingNetDetails(enabled bool) EngineOption {
	return func(e *Engine) {
		e.closingNetDetails = enabled
	}
}

// WithLogger sets the logger used for template diagnostics.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates an Engine with priority ordering by default.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{ordering: OrderingPriority}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) log() *slog.Logger {
	if e.logger == nil {
		return slog.Default()
	}
	return e.logger
}

// Generate runs mapping, trial balance and the five report builders in order.
func (e *Engine) Generate(in domain.GenerateInput, templates domain.Templates) (*domain.FinancialStatements, error) {
	mapped, err := MapAccounts(in.Transactions, in.Chart, in.Period)
	if err != nil {
		return nil, fmt.Errorf("account mapping: %w", err)
	}
	if unmatched := UnmatchedAccounts(mapped); len(unmatched) > 0 {
		e.log().Warn("Accounts missing from chart of accounts", slog.Int("count", len(unmatched)), slog.Any("accounts", unmatched))
	}

	tb, err := BuildTrialBalance(mapped, in.OpeningBalance)
	if err != nil {
		return nil, fmt.Errorf("trial balance: %w", err)
	}
	if len(tb.Lines) == 0 {
		return nil, fmt.Errorf("trial balance: %w: no lines were produced", apperrors.ErrPrecondition)
	}

	current := FilterByRange(mapped, in.Period.Current())

	bs, err := e.BuildBalanceSheet(templates[domain.ReportBalanceSheet], tb)
	if err != nil {
		return nil, fmt.Errorf("balance sheet: %w", err)
	}
	pl01, err := e.BuildPL01(templates[domain.ReportPL01], current, mapped)
	if err != nil {
		return nil, fmt.Errorf("profit and loss 01: %w", err)
	}
	pl02, err := e.BuildPL02(templates[domain.ReportPL02], pl01)
	if err != nil {
		return nil, fmt.Errorf("profit and loss 02: %w", err)
	}
	cf01, err := e.BuildCashFlow(domain.ReportCF01, templates[domain.ReportCF01], mapped, pl01)
	if err != nil {
		return nil, fmt.Errorf("cash flow 01: %w", err)
	}
	cf02, err := e.BuildCashFlow(domain.ReportCF02, templates[domain.ReportCF02], mapped, pl01)
	if err != nil {
		return nil, fmt.Errorf("cash flow 02: %w", err)
	}

	return &domain.FinancialStatements{
		TrialBalance: tb,
		BalanceSheet: bs,
		PL01:         pl01,
		PL02:         pl02,
		CF01:         cf01,
		CF02:         cf02,
	}, nil
}

// detailFunc computes a detail line's current and, when tracked, accumulated amount.
type detailFunc func(line domain.TemplateLine) (decimal.Decimal, decimal.Decimal)

// build sorts the template, computes detail lines, then evaluates the totals
// in order against the report's own lines.
func (e *Engine) build(kind domain.ReportKind, tmpl []domain.TemplateLine, withAccumulated bool, less func([]domain.TemplateLine) tieBreak, detail detailFunc) (*domain.Report, error) {
	sorted := SortTemplate(tmpl)
	lines := make([]domain.ReportLine, len(sorted))
	for i, t := range sorted {
		lines[i].TemplateLine = t
		if t.IsTotalLine {
			if withAccumulated {
				zero := decimal.Zero
				lines[i].AccumulatedAmount = &zero
			}
			continue
		}
		e.checkFormula(kind, t)
		cur, acc := detail(t)
		lines[i].CurrentAmount = cur
		if withAccumulated {
			lines[i].AccumulatedAmount = &acc
		}
	}

	order, err := totalsOrder(sorted, e.ordering, less(sorted))
	if err != nil {
		return nil, err
	}

	report := &domain.Report{Kind: kind, Lines: lines}
	for _, i := range order {
		formula := lines[i].CalculationFormula
		lines[i].CurrentAmount = EvaluateTotal(formula, report.Amount)
		if withAccumulated {
			acc := EvaluateTotal(formula, report.AccumulatedAmount)
			lines[i].AccumulatedAmount = &acc
		}
	}
	return report, nil
}

// checkFormula logs formula fragments the detail grammar does not understand.
func (e *Engine) checkFormula(kind domain.ReportKind, t domain.TemplateLine) {
	if strings.TrimSpace(t.CalculationFormula) == "" {
		return
	}
	f := ParseFormula(t.CalculationFormula, detailGrammar(kind))
	if f.Ignored != "" {
		e.log().Debug("Formula contains unrecognised fragments",
			slog.String("report", string(kind)),
			slog.String("code", t.Code),
			slog.String("formula", t.CalculationFormula),
			slog.String("ignored", f.Ignored))
	}
}

func detailGrammar(kind domain.ReportKind) Grammar {
	switch kind {
	case domain.ReportBalanceSheet:
		return BalanceSheetGrammar
	case domain.ReportPL01:
		return ProfitLossGrammar
	case domain.ReportCF01, domain.ReportCF02:
		return CashFlowGrammar
	default:
		return TotalGrammar
	}
}

func sameOrder(_ []domain.TemplateLine) tieBreak { return templateOrder }

// BuildBalanceSheet computes the balance sheet from the trial balance and
// asserts that total assets equal total liabilities plus equity.
//
// A detail line is evaluated from its DUNO/DUCO terms; a line without any
// is 0. With WithClosingNetDetails such a line takes the closing net of its
// balance sheet code instead, sign flipped for liability and equity codes
// (300 and above).
func (e *Engine) BuildBalanceSheet(tmpl []domain.TemplateLine, tb *domain.TrialBalance) (*domain.Report, error) {
	report, err := e.build(domain.ReportBalanceSheet, tmpl, false, balanceSheetOrder, func(t domain.TemplateLine) (decimal.Decimal, decimal.Decimal) {
		toks := ParseFormula(t.CalculationFormula, BalanceSheetGrammar).Tokens
		if len(toks) == 0 && e.closingNetDetails {
			return closingNetByCode(t, tb), decimal.Zero
		}
		return evaluateBalanceSheetTokens(toks, tb), decimal.Zero
	})
	if err != nil {
		return nil, err
	}

	assets := report.Amount(TotalAssetsCode)
	claims := report.Amount(TotalLiabilitiesEquityCode)
	if !assets.Equal(claims) {
		return nil, &apperrors.ReconciliationError{
			Check:       "balance_sheet",
			Discrepancy: assets.Sub(claims),
			Detail:      fmt.Sprintf("Tổng tài sản (%s) = %s khác tổng nguồn vốn (%s) = %s", TotalAssetsCode, assets.String(), TotalLiabilitiesEquityCode, claims.String()),
		}
	}
	return report, nil
}

func closingNetByCode(t domain.TemplateLine, tb *domain.TrialBalance) decimal.Decimal {
	code := strings.TrimSpace(t.Code)
	if code == "" {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, l := range tb.Lines {
		if l.BalanceSheet == code {
			total = total.Add(l.ClosingNet)
		}
	}
	if n, ok := t.NumericCode(); ok && n >= liabilitiesEquityCodeCutoff {
		return total.Neg()
	}
	return total
}

// BuildPL01 computes the profit and loss statement. current holds the rows of
// the reporting period, ytd the rows from the start of the year.
func (e *Engine) BuildPL01(tmpl []domain.TemplateLine, current, ytd []domain.MappedTransaction) (*domain.Report, error) {
	return e.build(domain.ReportPL01, tmpl, true, sameOrder, func(t domain.TemplateLine) (decimal.Decimal, decimal.Decimal) {
		code := strings.TrimSpace(t.Code)
		return EvaluateProfitLoss(t.CalculationFormula, code, current),
			EvaluateProfitLoss(t.CalculationFormula, code, ytd)
	})
}

// BuildPL02 re-aggregates PL01 through bracket references.
func (e *Engine) BuildPL02(tmpl []domain.TemplateLine, pl01 *domain.Report) (*domain.Report, error) {
	return e.build(domain.ReportPL02, tmpl, true, sameOrder, func(t domain.TemplateLine) (decimal.Decimal, decimal.Decimal) {
		return EvaluateTotal(t.CalculationFormula, pl01.Amount),
			EvaluateTotal(t.CalculationFormula, pl01.AccumulatedAmount)
	})
}

// BuildCashFlow computes CF01 or CF02 from the year-to-date rows; PL(code)
// terms read the current amount of pl01.
func (e *Engine) BuildCashFlow(kind domain.ReportKind, tmpl []domain.TemplateLine, ytd []domain.MappedTransaction, pl01 *domain.Report) (*domain.Report, error) {
	if kind != domain.ReportCF01 && kind != domain.ReportCF02 {
		return nil, fmt.Errorf("%w: %s is not a cash flow report", apperrors.ErrValidation, kind)
	}
	return e.build(kind, tmpl, false, sameOrder, func(t domain.TemplateLine) (decimal.Decimal, decimal.Decimal) {
		return EvaluateCashFlow(t.CalculationFormula, ytd, pl01.Amount), decimal.Zero
	})
}
