package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// Standard names of the motor portfolio columns the PNT-11 summary reads.
const (
	ColumnCoverageID   = "COVERAGE_ID"
	ColumnTypeVehicle  = "TYPE_VEHICLE"
	ColumnVehicleAge   = "VEHICLE_AGE"
	ColumnRegNo        = "REG_NO"
	ColumnVehicleValue = "VEHICLE_VALUE"
	ColumnGWP          = "GWP"
	ColumnClaimID      = "CLAIM_ID"
	ColumnClaimPayment = "CLAIM_PMT"
	ColumnUPREnd       = "UPR_END"
	ColumnOSCEnd       = "OSC_END"
	ColumnLARCResEnd   = "LARC_RES_END"
	ColumnUPRBeg       = "UPR_BEG"
	ColumnOSCBeg       = "OSC_BEG"
	ColumnLARCResBeg   = "LARC_RES_BEG"
)

// Columns that identify a PNT-11 summary row.
const (
	ColumnProdMofCode     = "PROD_MOF_CODE"
	ColumnProdMofName     = "PROD_MOF_NAME"
	ColumnPNT11Code       = "PNT_11_CODE"
	ColumnPNT11Name       = "PNT_11_NAME"
	ColumnSubPNT11Code    = "SUB_PNT_11_CODE"
	ColumnSubPNT11Name    = "SUB_PNT_11_NAME"
	ColumnVehicleAgeGroup = "VEHICLE_AGE_GROUP"
	ColumnAgePNT11Code    = "AGE_PNT_11_CODE"
)

// ReserveTemplateWithOpening is the reserve upload template that carries the
// opening reserves next to the closing ones.
const ReserveTemplateWithOpening = "RES_PNT_11_02"

// UnbandedAge labels a vehicle whose age is missing or outside every band.
const UnbandedAge = "NaN"

// ProductMapping maps a coverage id to its MOF product line.
type ProductMapping struct {
	Code string
	Name string
}

// VehicleTypeMapping maps a vehicle type to its PNT-11 group and subgroup.
type VehicleTypeMapping struct {
	Code    string
	Name    string
	SubCode string
	SubName string
}

// AgeBand is one vehicle age group. Lower is inclusive for the first band
// only; Upper is always inclusive.
type AgeBand struct {
	Code  string
	Label string
	Lower float64
	Upper float64
	First bool
}

// Contains reports whether age falls in the band.
func (b AgeBand) Contains(age float64) bool {
	if age > b.Upper && !math.IsInf(b.Upper, 1) {
		return false
	}
	if b.First {
		return age >= b.Lower
	}
	return age > b.Lower
}

// PNT11Mapping is the classification applied to one upload.
type PNT11Mapping struct {
	Products     map[string]ProductMapping
	VehicleTypes map[string]VehicleTypeMapping
	AgeBands     []AgeBand
}

// PNT11Key identifies a summary row.
type PNT11Key struct {
	ProdMofCode     string
	ProdMofName     string
	PNT11Code       string
	PNT11Name       string
	SubPNT11Code    string
	SubPNT11Name    string
	VehicleAgeGroup string
	AgePNT11Code    string
}

// Less orders keys field by field.
func (k PNT11Key) Less(o PNT11Key) bool {
	a := [...]string{k.ProdMofCode, k.ProdMofName, k.PNT11Code, k.PNT11Name, k.SubPNT11Code, k.SubPNT11Name, k.VehicleAgeGroup, k.AgePNT11Code}
	b := [...]string{o.ProdMofCode, o.ProdMofName, o.PNT11Code, o.PNT11Name, o.SubPNT11Code, o.SubPNT11Name, o.VehicleAgeGroup, o.AgePNT11Code}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// ReserveAmounts holds unearned premium, outstanding claims and LARC reserves.
type ReserveAmounts struct {
	UPR     decimal.Decimal
	OSC     decimal.Decimal
	LARCRes decimal.Decimal
}

// Add returns the field-wise sum.
func (r ReserveAmounts) Add(o ReserveAmounts) ReserveAmounts {
	return ReserveAmounts{UPR: r.UPR.Add(o.UPR), OSC: r.OSC.Add(o.OSC), LARCRes: r.LARCRes.Add(o.LARCRes)}
}

// Sub returns the field-wise difference.
func (r ReserveAmounts) Sub(o ReserveAmounts) ReserveAmounts {
	return ReserveAmounts{UPR: r.UPR.Sub(o.UPR), OSC: r.OSC.Sub(o.OSC), LARCRes: r.LARCRes.Sub(o.LARCRes)}
}

// Total returns UPR + OSC + LARC.
func (r ReserveAmounts) Total() decimal.Decimal {
	return r.UPR.Add(r.OSC).Add(r.LARCRes)
}

// PNT11Row is one line of the PNT-11 motor portfolio summary.
type PNT11Row struct {
	PNT11Key
	NumCars      int64
	SumAssured   decimal.Decimal
	GrossPremium decimal.Decimal
	NumClaims    int64
	ClaimPayment decimal.Decimal
	Closing      ReserveAmounts
	Opening      ReserveAmounts
}

// Movement returns closing minus opening reserves.
func (r PNT11Row) Movement() ReserveAmounts {
	return r.Closing.Sub(r.Opening)
}
