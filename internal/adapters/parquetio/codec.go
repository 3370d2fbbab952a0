package parquetio

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/mof_report_service/internal/core/domain"
	"github.com/parquet-go/parquet-go"
	"github.com/shopspring/decimal"
)

// ContentType is the MIME type used when storing parquet objects.
const ContentType = "application/octet-stream"

var dateLayouts = []string{time.DateOnly, time.DateTime, time.RFC3339}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	// zero dates fall outside every reporting range
	return time.Time{}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func amount(p *float64) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*p)
}

func encode[T any](rows []T) ([]byte, error) {
	var buf bytes.Buffer
	if err := parquet.Write(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode[T any](data []byte) ([]T, error) {
	return parquet.Read[T](bytes.NewReader(data), int64(len(data)))
}

// DecodeLedger reads the ledger columns of a snapshot. Missing amounts are zero.
func DecodeLedger(data []byte) ([]domain.TransactionRow, error) {
	records, err := decode[ledgerRecord](data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ledger snapshot: %w", err)
	}
	rows := make([]domain.TransactionRow, len(records))
	for i, r := range records {
		rows[i] = domain.TransactionRow{
			DebitAccount:  str(r.DebitAccount),
			CreditAccount: str(r.CreditAccount),
			DebitAmount:   amount(r.DebitAmount),
			CreditAmount:  amount(r.CreditAmount),
			InvoiceDate:   parseDate(str(r.InvoiceDate)),
		}
	}
	return rows, nil
}

// EncodeLedger writes rows with the same columns an import produces.
func EncodeLedger(rows []domain.TransactionRow) ([]byte, error) {
	records := make([]ledgerRecord, len(rows))
	for i, r := range rows {
		debitAcc, creditAcc := r.DebitAccount, r.CreditAccount
		debit, credit := r.DebitAmount.InexactFloat64(), r.CreditAmount.InexactFloat64()
		records[i] = ledgerRecord{
			DebitAccount:  &debitAcc,
			CreditAccount: &creditAcc,
			DebitAmount:   &debit,
			CreditAmount:  &credit,
		}
		if !r.InvoiceDate.IsZero() {
			date := r.InvoiceDate.Format(time.DateOnly)
			records[i].InvoiceDate = &date
		}
	}
	return encode(records)
}

// DecodeTrialBalance reads a trial balance written by EncodeTrialBalance,
// typically the closing balance of the previous period.
func DecodeTrialBalance(data []byte) ([]domain.TrialBalanceLine, error) {
	records, err := decode[trialBalanceRecord](data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode trial balance: %w", err)
	}
	lines := make([]domain.TrialBalanceLine, len(records))
	for i, r := range records {
		lines[i] = domain.TrialBalanceLine{
			TrialBalanceKey: domain.TrialBalanceKey{
				Account:      strings.TrimSpace(r.Account),
				Subledger:    strings.TrimSpace(r.Subledger),
				BalanceSheet: strings.TrimSpace(r.BalanceSheet),
				ProfitLoss:   strings.TrimSpace(r.ProfitLoss),
			},
			OpeningDebit:  decimal.NewFromFloat(r.OpeningDebit),
			OpeningCredit: decimal.NewFromFloat(r.OpeningCredit),
			PeriodDebit:   decimal.NewFromFloat(r.PeriodDebit),
			PeriodCredit:  decimal.NewFromFloat(r.PeriodCredit),
			ClosingDebit:  decimal.NewFromFloat(r.ClosingDebit),
			ClosingCredit: decimal.NewFromFloat(r.ClosingCredit),
			ClosingNet:    decimal.NewFromFloat(r.ClosingNet),
		}
	}
	return lines, nil
}

// EncodeTrialBalance writes the trial balance lines.
func EncodeTrialBalance(tb *domain.TrialBalance) ([]byte, error) {
	records := make([]trialBalanceRecord, len(tb.Lines))
	for i, l := range tb.Lines {
		records[i] = trialBalanceRecord{
			Account:       l.Account,
			Subledger:     l.Subledger,
			BalanceSheet:  l.BalanceSheet,
			ProfitLoss:    l.ProfitLoss,
			OpeningDebit:  l.OpeningDebit.InexactFloat64(),
			OpeningCredit: l.OpeningCredit.InexactFloat64(),
			PeriodDebit:   l.PeriodDebit.InexactFloat64(),
			PeriodCredit:  l.PeriodCredit.InexactFloat64(),
			ClosingDebit:  l.ClosingDebit.InexactFloat64(),
			ClosingCredit: l.ClosingCredit.InexactFloat64(),
			ClosingNet:    l.ClosingNet.InexactFloat64(),
		}
	}
	return encode(records)
}

func accumulated(l domain.ReportLine) float64 {
	if l.AccumulatedAmount == nil {
		return 0
	}
	return l.AccumulatedAmount.InexactFloat64()
}

// EncodeReport writes a report with the columns of its kind: PL01 adds the
// accumulated amount, PL02 carries it but drops the note reference.
func EncodeReport(r *domain.Report) ([]byte, error) {
	switch r.Kind {
	case domain.ReportPL01:
		records := make([]pl01Record, len(r.Lines))
		for i, l := range r.Lines {
			records[i] = pl01Record{
				LineCode:          l.LineCode,
				LineName:          l.LineName,
				Code:              l.Code,
				NoteRef:           l.NoteRef,
				CurrentAmount:     l.CurrentAmount.InexactFloat64(),
				AccumulatedAmount: accumulated(l),
			}
		}
		return encode(records)
	case domain.ReportPL02:
		records := make([]pl02Record, len(r.Lines))
		for i, l := range r.Lines {
			records[i] = pl02Record{
				LineCode:          l.LineCode,
				LineName:          l.LineName,
				Code:              l.Code,
				CurrentAmount:     l.CurrentAmount.InexactFloat64(),
				AccumulatedAmount: accumulated(l),
			}
		}
		return encode(records)
	case domain.ReportBalanceSheet, domain.ReportCF01, domain.ReportCF02:
		records := make([]statementRecord, len(r.Lines))
		for i, l := range r.Lines {
			records[i] = statementRecord{
				LineCode:      l.LineCode,
				LineName:      l.LineName,
				Code:          l.Code,
				NoteRef:       l.NoteRef,
				CurrentAmount: l.CurrentAmount.InexactFloat64(),
			}
		}
		return encode(records)
	default:
		return nil, fmt.Errorf("no parquet layout for report kind %s", r.Kind)
	}
}

// EncodePNT11 writes the PNT-11 summary with the derived reserve movements.
func EncodePNT11(rows []domain.PNT11Row) ([]byte, error) {
	records := make([]pnt11Record, len(rows))
	for i, r := range rows {
		movement := r.Movement()
		records[i] = pnt11Record{
			ProdMofCode:     r.ProdMofCode,
			ProdMofName:     r.ProdMofName,
			PNT11Code:       r.PNT11Code,
			PNT11Name:       r.PNT11Name,
			SubPNT11Code:    r.SubPNT11Code,
			SubPNT11Name:    r.SubPNT11Name,
			VehicleAgeGroup: r.VehicleAgeGroup,
			AgePNT11Code:    r.AgePNT11Code,
			NumCars:         r.NumCars,
			SumAssured:      r.SumAssured.InexactFloat64(),
			GrossPremium:    r.GrossPremium.InexactFloat64(),
			NumClaims:       r.NumClaims,
			ClaimPayment:    r.ClaimPayment.InexactFloat64(),
			UPREnd:          r.Closing.UPR.InexactFloat64(),
			OSCEnd:          r.Closing.OSC.InexactFloat64(),
			LARCResEnd:      r.Closing.LARCRes.InexactFloat64(),
			UPRBeg:          r.Opening.UPR.InexactFloat64(),
			OSCBeg:          r.Opening.OSC.InexactFloat64(),
			LARCResBeg:      r.Opening.LARCRes.InexactFloat64(),
			UPRPeriod:       movement.UPR.InexactFloat64(),
			OSCPeriod:       movement.OSC.InexactFloat64(),
			LARCResPeriod:   movement.LARCRes.InexactFloat64(),
			ResEnd:          r.Closing.Total().InexactFloat64(),
			ResBeg:          r.Opening.Total().InexactFloat64(),
			ResPeriod:       movement.Total().InexactFloat64(),
		}
	}
	return encode(records)
}
