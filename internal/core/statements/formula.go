package statements

import (
	"strings"
	"unicode"

	"github.com/SscSPs/mof_report_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TokenKind is the closed set of formula terms.
type TokenKind int

const (
	BracketRef TokenKind = iota
	Duno
	Duco
	PhatSinhNoPL
	PhatSinhCoPL
	PhatSinhNoCashflow
	PhatSinhCoCashflow
	PLRef
)

func (k TokenKind) String() string {
	switch k {
	case BracketRef:
		return "BracketRef"
	case Duno:
		return "DUNO"
	case Duco:
		return "DUCO"
	case PhatSinhNoPL:
		return "PhatSinhNO"
	case PhatSinhCoPL:
		return "PhatSinhCO"
	case PhatSinhNoCashflow:
		return "PhatSinhNO(scope/code)"
	case PhatSinhCoCashflow:
		return "PhatSinhCO(scope/code)"
	case PLRef:
		return "PL"
	default:
		return "unknown"
	}
}

// Grammar selects which terms a formula may contain.
type Grammar int

const (
	// TotalGrammar accepts [code] and the legacy (code).
	TotalGrammar Grammar = iota
	// BalanceSheetGrammar accepts DUNO(code) and DUCO(code).
	BalanceSheetGrammar
	// ProfitLossGrammar accepts the bare PhatSinhNO and PhatSinhCO.
	ProfitLossGrammar
	// CashFlowGrammar accepts PhatSinhNO(11/code), PhatSinhCO(11/code) and PL(code).
	CashFlowGrammar
)

// Token is one signed term of a formula.
type Token struct {
	Sign  int
	Kind  TokenKind
	Arg   string
	Scope string // subledger prefix of the cash flow terms
}

// Formula is a tokenized calculation formula.
type Formula struct {
	Tokens []Token
	// Ignored holds the input fragments that matched no term.
	Ignored string
}

var minusVariants = strings.NewReplacer("–", "-", "—", "-", "−", "-")

// NormalizeFormula removes whitespace and maps unicode dashes to '-'.
func NormalizeFormula(s string) string {
	s = minusVariants.Replace(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// formulaLexer walks a normalized formula.
type formulaLexer struct {
	input string
	pos   int
}

func (l *formulaLexer) isAtEnd() bool { return l.pos >= len(l.input) }

func (l *formulaLexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.input[l.pos]
}

// consumeKeyword advances past kw when it is next. Case must match exactly.
func (l *formulaLexer) consumeKeyword(kw string) bool {
	end := l.pos + len(kw)
	if end > len(l.input) || l.input[l.pos:end] != kw {
		return false
	}
	l.pos = end
	return true
}

// enclosed reads open...close and returns the trimmed contents. On failure the position is unchanged.
func (l *formulaLexer) enclosed(open, close byte) (string, bool) {
	if l.peek() != open {
		return "", false
	}
	end := strings.IndexByte(l.input[l.pos+1:], close)
	if end <= 0 {
		return "", false
	}
	body := l.input[l.pos+1 : l.pos+1+end]
	l.pos += end + 2
	return body, true
}

// ParseFormula tokenizes formula under grammar g. Fragments that are not
// terms of g are skipped and reported in Ignored; a sign applies only to the
// term that immediately follows it.
func ParseFormula(formula string, g Grammar) Formula {
	lex := &formulaLexer{input: NormalizeFormula(formula)}
	var out Formula
	var ignored strings.Builder
	sign := 1

	for !lex.isAtEnd() {
		ch := lex.peek()
		if ch == '+' || ch == '-' {
			sign = 1
			if ch == '-' {
				sign = -1
			}
			lex.pos++
			continue
		}

		start := lex.pos
		tok, ok := lex.term(g)
		if ok {
			tok.Sign = sign
			out.Tokens = append(out.Tokens, tok)
		} else {
			lex.pos = start + 1
			ignored.WriteByte(ch)
		}
		sign = 1
	}
	out.Ignored = ignored.String()
	return out
}

func (l *formulaLexer) term(g Grammar) (Token, bool) {
	start := l.pos
	switch g {
	case TotalGrammar:
		if code, ok := l.enclosed('[', ']'); ok {
			return Token{Kind: BracketRef, Arg: code}, true
		}
		if code, ok := l.enclosed('(', ')'); ok {
			return Token{Kind: BracketRef, Arg: code}, true
		}
	case BalanceSheetGrammar:
		for _, kw := range []struct {
			name string
			kind TokenKind
		}{{"DUNO", Duno}, {"DUCO", Duco}} {
			if l.consumeKeyword(kw.name) {
				if code, ok := l.enclosed('(', ')'); ok {
					return Token{Kind: kw.kind, Arg: code}, true
				}
				l.pos = start
			}
		}
	case ProfitLossGrammar:
		if l.consumeKeyword("PhatSinhNO") {
			return Token{Kind: PhatSinhNoPL}, true
		}
		if l.consumeKeyword("PhatSinhCO") {
			return Token{Kind: PhatSinhCoPL}, true
		}
	case CashFlowGrammar:
		for _, kw := range []struct {
			name string
			kind TokenKind
		}{{"PhatSinhNO", PhatSinhNoCashflow}, {"PhatSinhCO", PhatSinhCoCashflow}} {
			if l.consumeKeyword(kw.name) {
				if body, ok := l.enclosed('(', ')'); ok {
					if scope, code, found := strings.Cut(body, "/"); found && scope != "" && code != "" {
						return Token{Kind: kw.kind, Scope: scope, Arg: code}, true
					}
				}
				l.pos = start
			}
		}
		if l.consumeKeyword("PL") {
			if code, ok := l.enclosed('(', ')'); ok {
				return Token{Kind: PLRef, Arg: code}, true
			}
			l.pos = start
		}
	}
	return Token{}, false
}

// CodeLookup returns the amount a table holds under a template code.
type CodeLookup func(code string) decimal.Decimal

func signed(sign int, v decimal.Decimal) decimal.Decimal {
	if sign < 0 {
		return v.Neg()
	}
	return v
}

// EvaluateTotal sums the bracket references of formula against table.
func EvaluateTotal(formula string, table CodeLookup) decimal.Decimal {
	total := decimal.Zero
	for _, t := range ParseFormula(formula, TotalGrammar).Tokens {
		total = total.Add(signed(t.Sign, table(t.Arg)))
	}
	return total
}

// EvaluateBalanceSheet evaluates DUNO/DUCO terms against the trial balance.
func EvaluateBalanceSheet(formula string, tb *domain.TrialBalance) decimal.Decimal {
	return evaluateBalanceSheetTokens(ParseFormula(formula, BalanceSheetGrammar).Tokens, tb)
}

func evaluateBalanceSheetTokens(tokens []Token, tb *domain.TrialBalance) decimal.Decimal {
	total := decimal.Zero
	for _, t := range tokens {
		v := decimal.Zero
		for _, l := range tb.Lines {
			if l.BalanceSheet != t.Arg {
				continue
			}
			switch t.Kind {
			case Duno:
				v = v.Add(l.ClosingDebit)
			case Duco:
				v = v.Sub(l.ClosingCredit)
			}
		}
		total = total.Add(signed(t.Sign, v))
	}
	return total
}

// EvaluateProfitLoss evaluates PhatSinhNO/PhatSinhCO for the line keyed by code.
// PhatSinhCO sums rows posted to 911 against the line's PL code; PhatSinhNO
// sums rows posted to the line's PL code against 911.
func EvaluateProfitLoss(formula, code string, txns []domain.MappedTransaction) decimal.Decimal {
	total := decimal.Zero
	if code == "" {
		return total
	}
	for _, t := range ParseFormula(formula, ProfitLossGrammar).Tokens {
		v := decimal.Zero
		for _, m := range txns {
			var hit bool
			switch t.Kind {
			case PhatSinhCoPL:
				hit = m.Credit.ProfitLoss == code && m.Debit.Subledger == domain.ClosingAccountCode
			case PhatSinhNoPL:
				hit = m.Debit.ProfitLoss == code && m.Credit.Subledger == domain.ClosingAccountCode
			}
			if hit {
				v = v.Add(m.Net())
			}
		}
		total = total.Add(signed(t.Sign, v))
	}
	return total
}

// EvaluateCashFlow evaluates the cash flow terms. PL(code) reads pl01.
func EvaluateCashFlow(formula string, txns []domain.MappedTransaction, pl01 CodeLookup) decimal.Decimal {
	total := decimal.Zero
	for _, t := range ParseFormula(formula, CashFlowGrammar).Tokens {
		v := decimal.Zero
		switch t.Kind {
		case PLRef:
			if pl01 != nil {
				v = pl01(t.Arg)
			}
		case PhatSinhNoCashflow, PhatSinhCoCashflow:
			for _, m := range txns {
				if !strings.HasPrefix(m.Debit.Subledger, t.Scope) || m.Credit.Subledger != t.Arg {
					continue
				}
				if t.Kind == PhatSinhNoCashflow {
					v = v.Add(decimal.Max(m.Net(), decimal.Zero))
				} else {
					v = v.Sub(decimal.Max(m.Net().Neg(), decimal.Zero))
				}
			}
		}
		total = total.Add(signed(t.Sign, v))
	}
	return total
}

// References lists the codes a total formula refers to, in order of appearance.
func References(formula string) []string {
	toks := ParseFormula(formula, TotalGrammar).Tokens
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Arg)
	}
	return out
}
