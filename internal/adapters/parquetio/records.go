// Package parquetio encodes ledgers, trial balances, reports and imported
// datasets as parquet files.
package parquetio

// ledgerRecord reads the ledger columns of an imported snapshot. Imported
// columns are all optional; other columns of the file are ignored.
type ledgerRecord struct {
	DebitAccount  *string  `parquet:"DEBIT_ACC,optional"`
	CreditAccount *string  `parquet:"CREDIT_ACC,optional"`
	DebitAmount   *float64 `parquet:"DEBIT_AMT,optional"`
	CreditAmount  *float64 `parquet:"CREDIT_AMT,optional"`
	InvoiceDate   *string  `parquet:"INVOICE_DATE,optional"`
}

type trialBalanceRecord struct {
	Account       string  `parquet:"ACCOUNT"`
	Subledger     string  `parquet:"AG_CODE"`
	BalanceSheet  string  `parquet:"BS_CODE"`
	ProfitLoss    string  `parquet:"PL_CODE"`
	OpeningDebit  float64 `parquet:"OPENING_DEBIT_AMOUNT"`
	OpeningCredit float64 `parquet:"OPENING_CREDIT_AMOUNT"`
	PeriodDebit   float64 `parquet:"PERIOD_DEBIT_AMOUNT"`
	PeriodCredit  float64 `parquet:"PERIOD_CREDIT_AMOUNT"`
	ClosingDebit  float64 `parquet:"CLOSING_DEBIT_AMOUNT"`
	ClosingCredit float64 `parquet:"CLOSING_CREDIT_AMOUNT"`
	ClosingNet    float64 `parquet:"CLOSING_NET_AMOUNT"`
}

// statementRecord is the row shape of the balance sheet and both cash flows.
type statementRecord struct {
	LineCode      string  `parquet:"lineCode"`
	LineName      string  `parquet:"lineName"`
	Code          string  `parquet:"code"`
	NoteRef       string  `parquet:"noteRef"`
	CurrentAmount float64 `parquet:"CURRENT_AMOUNT"`
}

type pl01Record struct {
	LineCode          string  `parquet:"lineCode"`
	LineName          string  `parquet:"lineName"`
	Code              string  `parquet:"code"`
	NoteRef           string  `parquet:"noteRef"`
	CurrentAmount     float64 `parquet:"CURRENT_AMOUNT"`
	AccumulatedAmount float64 `parquet:"ACCUMULATED_AMOUNT"`
}

type pl02Record struct {
	LineCode          string  `parquet:"lineCode"`
	LineName          string  `parquet:"lineName"`
	Code              string  `parquet:"code"`
	CurrentAmount     float64 `parquet:"CURRENT_AMOUNT"`
	AccumulatedAmount float64 `parquet:"ACCUMULATED_AMOUNT"`
}

// pnt11Record is the row shape of the PNT-11 motor portfolio summary. The
// key columns double as the input of the next period's summary.
type pnt11Record struct {
	ProdMofCode     string  `parquet:"PROD_MOF_CODE"`
	ProdMofName     string  `parquet:"PROD_MOF_NAME"`
	PNT11Code       string  `parquet:"PNT_11_CODE"`
	PNT11Name       string  `parquet:"PNT_11_NAME"`
	SubPNT11Code    string  `parquet:"SUB_PNT_11_CODE"`
	SubPNT11Name    string  `parquet:"SUB_PNT_11_NAME"`
	VehicleAgeGroup string  `parquet:"VEHICLE_AGE_GROUP"`
	AgePNT11Code    string  `parquet:"AGE_PNT_11_CODE"`
	NumCars         int64   `parquet:"NUM_CARS"`
	SumAssured      float64 `parquet:"SUM_ASSURED"`
	GrossPremium    float64 `parquet:"GROSS_PREMIUM"`
	NumClaims       int64   `parquet:"NUM_CLAIMS"`
	ClaimPayment    float64 `parquet:"CLAIM_PMT"`
	UPREnd          float64 `parquet:"UPR_END"`
	OSCEnd          float64 `parquet:"OSC_END"`
	LARCResEnd      float64 `parquet:"LARC_RES_END"`
	UPRBeg          float64 `parquet:"UPR_BEG"`
	OSCBeg          float64 `parquet:"OSC_BEG"`
	LARCResBeg      float64 `parquet:"LARC_RES_BEG"`
	UPRPeriod       float64 `parquet:"UPR_PERIOD"`
	OSCPeriod       float64 `parquet:"OSC_PERIOD"`
	LARCResPeriod   float64 `parquet:"LARC_RES_PERIOD"`
	ResEnd          float64 `parquet:"RES_END"`
	ResBeg          float64 `parquet:"RES_BEG"`
	ResPeriod       float64 `parquet:"RES_PERIOD"`
}
