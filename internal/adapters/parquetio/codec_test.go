package parquetio_test

import (
	"testing"
	"time"

	"github.com/SscSPs/mof_report_service/internal/adapters/parquetio"
	"github.com/SscSPs/mof_report_service/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestLedgerRoundTrip(t *testing.T) {
	rows := []domain.TransactionRow{
		{DebitAccount: "111", CreditAccount: "411", DebitAmount: decimal.NewFromInt(1000), InvoiceDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{DebitAccount: "411", CreditAccount: "111", CreditAmount: decimal.RequireFromString("1000.25")},
	}

	data, err := parquetio.EncodeLedger(rows)
	require.NoError(t, err)

	got, err := parquetio.DecodeLedger(data)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "111", got[0].DebitAccount)
	assert.Equal(t, "411", got[0].CreditAccount)
	assertDecimal(t, "1000", got[0].DebitAmount)
	assertDecimal(t, "0", got[0].CreditAmount)
	assert.Equal(t, "2024-03-05", got[0].InvoiceDate.Format(time.DateOnly))

	assertDecimal(t, "1000.25", got[1].CreditAmount)
	assert.True(t, got[1].InvoiceDate.IsZero())
}

func TestDecodeLedgerFromImportedDataset(t *testing.T) {
	ds := &domain.Dataset{Columns: []domain.Column{
		{Name: "DESCRIPTION", Type: domain.DataTypeText, Values: []any{"opening capital", nil}},
		{Name: domain.ColumnDebitAccount, Type: domain.DataTypeText, Values: []any{" 111 ", "911"}},
		{Name: domain.ColumnCreditAccount, Type: domain.DataTypeText, Values: []any{"411", "421"}},
		{Name: domain.ColumnDebitAmount, Type: domain.DataTypeDouble, Values: []any{1000.0, nil}},
		{Name: domain.ColumnCreditAmount, Type: domain.DataTypeDouble, Values: []any{nil, 300.0}},
		{Name: domain.ColumnInvoiceDate, Type: domain.DataTypeDate, Values: []any{"2024-01-02", "2024-03-31"}},
		{Name: "LINE_NO", Type: domain.DataTypeInteger, Values: []any{int64(1), int64(2)}},
	}}

	data, err := parquetio.EncodeDataset(ds)
	require.NoError(t, err)

	rows, err := parquetio.DecodeLedger(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "111", rows[0].DebitAccount, "account codes are trimmed")
	assertDecimal(t, "1000", rows[0].DebitAmount)
	assertDecimal(t, "0", rows[0].CreditAmount)
	assertDecimal(t, "0", rows[1].DebitAmount)
	assertDecimal(t, "300", rows[1].CreditAmount)
	assert.Equal(t, time.March, rows[1].InvoiceDate.Month())
}

func TestEncodeDatasetRejectsBadInput(t *testing.T) {
	_, err := parquetio.EncodeDataset(&domain.Dataset{Columns: []domain.Column{
		{Name: "A", Type: domain.DataTypeText, Values: []any{"x"}},
		{Name: "A", Type: domain.DataTypeText, Values: []any{"y"}},
	}})
	assert.ErrorContains(t, err, "duplicate column")

	_, err = parquetio.EncodeDataset(&domain.Dataset{Columns: []domain.Column{
		{Name: "A", Type: domain.DataTypeText, Values: []any{true}},
	}})
	assert.ErrorContains(t, err, "unsupported cell type")
}

func TestTrialBalanceRoundTrip(t *testing.T) {
	tb := &domain.TrialBalance{Lines: []domain.TrialBalanceLine{{
		TrialBalanceKey: domain.TrialBalanceKey{Account: "111", Subledger: "111", BalanceSheet: "110"},
		PeriodDebit:     decimal.NewFromInt(800),
		OpeningDebit:    decimal.NewFromInt(200),
		ClosingDebit:    decimal.NewFromInt(1000),
		ClosingNet:      decimal.NewFromInt(1000),
	}}}

	data, err := parquetio.EncodeTrialBalance(tb)
	require.NoError(t, err)

	lines, err := parquetio.DecodeTrialBalance(data)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, tb.Lines[0].TrialBalanceKey, lines[0].TrialBalanceKey)
	assertDecimal(t, "1000", lines[0].ClosingDebit)
	assertDecimal(t, "0", lines[0].ClosingCredit)
}

func TestEncodeReport(t *testing.T) {
	acc := decimal.NewFromInt(1500)
	line := domain.ReportLine{
		TemplateLine:      domain.TemplateLine{LineCode: "1", LineName: "Doanh thu", Code: "01"},
		CurrentAmount:     decimal.NewFromInt(500),
		AccumulatedAmount: &acc,
	}

	for _, kind := range domain.TemplateKinds {
		data, err := parquetio.EncodeReport(&domain.Report{Kind: kind, Lines: []domain.ReportLine{line}})
		require.NoError(t, err, kind)
		assert.NotEmpty(t, data, kind)
	}

	_, err := parquetio.EncodeReport(&domain.Report{Kind: domain.ReportTrialBalance})
	assert.Error(t, err)
}

func TestDatasetRoundTrip(t *testing.T) {
	ds := &domain.Dataset{Columns: []domain.Column{
		{Name: "REG_NO", Type: domain.DataTypeText, Values: []any{"29A-12345", nil, "30B-00001"}},
		{Name: "GWP", Type: domain.DataTypeDouble, Values: []any{1200.5, 300.0, nil}},
		{Name: "VEHICLE_AGE", Type: domain.DataTypeInteger, Values: []any{int64(2), nil, int64(11)}},
	}}

	data, err := parquetio.EncodeDataset(ds)
	require.NoError(t, err)

	got, err := parquetio.DecodeDataset(data)
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())

	for _, want := range ds.Columns {
		col, ok := got.Column(want.Name)
		require.True(t, ok, want.Name)
		assert.Equal(t, want.Type, col.Type, want.Name)
		assert.Equal(t, want.Values, col.Values, want.Name)
	}

	_, err = parquetio.DecodeDataset([]byte("not parquet"))
	assert.Error(t, err)
}

func TestEncodePNT11(t *testing.T) {
	rows := []domain.PNT11Row{{
		PNT11Key:     domain.PNT11Key{ProdMofCode: "XCG", PNT11Code: "01", VehicleAgeGroup: "Dưới 3 năm", AgePNT11Code: "01"},
		NumCars:      3,
		GrossPremium: decimal.NewFromInt(900),
		NumClaims:    1,
		ClaimPayment: decimal.NewFromInt(150),
		Closing:      domain.ReserveAmounts{UPR: decimal.NewFromInt(100), OSC: decimal.NewFromInt(20), LARCRes: decimal.NewFromInt(5)},
		Opening:      domain.ReserveAmounts{UPR: decimal.NewFromInt(60), OSC: decimal.NewFromInt(30)},
	}}

	data, err := parquetio.EncodePNT11(rows)
	require.NoError(t, err)

	ds, err := parquetio.DecodeDataset(data)
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())

	cell := func(name string) any {
		col, ok := ds.Column(name)
		require.True(t, ok, name)
		return col.Values[0]
	}
	assert.Equal(t, "XCG", cell("PROD_MOF_CODE"))
	assert.Equal(t, int64(3), cell("NUM_CARS"))
	assert.Equal(t, 40.0, cell("UPR_PERIOD"))
	assert.Equal(t, -10.0, cell("OSC_PERIOD"))
	assert.Equal(t, 125.0, cell("RES_END"))
	assert.Equal(t, 90.0, cell("RES_BEG"))
	assert.Equal(t, 35.0, cell("RES_PERIOD"))
}
