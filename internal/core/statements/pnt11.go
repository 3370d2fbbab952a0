package statements

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/SscSPs/mof_report_service/internal/apperrors"
	"github.com/SscSPs/mof_report_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NewAgeBands builds the vehicle age groups from bin edges. Every edge after
// the first is an exclusive bound in whole units: [0, 3, 6, +Inf] gives
// "Dưới 3 năm", "Từ 3 đến 5 năm" and "Từ 6 năm trở lên".
func NewAgeBands(edges []float64, unit string) ([]domain.AgeBand, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("%w: VEHICLE_AGE_GROUP needs at least two bin edges", apperrors.ErrValidation)
	}
	if math.IsInf(edges[0], 0) || math.IsNaN(edges[0]) {
		return nil, fmt.Errorf("%w: the first VEHICLE_AGE_GROUP bin edge must be finite", apperrors.ErrValidation)
	}
	for i := 1; i < len(edges); i++ {
		if math.IsNaN(edges[i]) || edges[i] <= edges[i-1] || math.IsInf(edges[i-1], 1) {
			return nil, fmt.Errorf("%w: VEHICLE_AGE_GROUP bin edges must increase", apperrors.ErrValidation)
		}
	}
	if edges[1]-1 < edges[0] {
		return nil, fmt.Errorf("%w: the first VEHICLE_AGE_GROUP band is empty", apperrors.ErrValidation)
	}

	bands := make([]domain.AgeBand, 0, len(edges)-1)
	for i := 0; i+1 < len(edges); i++ {
		lo, hi := edges[i], edges[i+1]
		band := domain.AgeBand{Code: fmt.Sprintf("%02d", i+1), First: i == 0, Lower: lo, Upper: hi - 1}
		if i > 0 {
			band.Lower = lo - 1
		}

		var label string
		switch {
		case math.IsInf(hi, 1):
			band.Upper = hi
			label = fmt.Sprintf("Từ %d %s trở lên", int64(lo), unit)
		case i == 0:
			label = fmt.Sprintf("Dưới %d %s", int64(hi), unit)
		default:
			label = fmt.Sprintf("Từ %d đến %d %s", int64(lo), int64(hi)-1, unit)
		}
		band.Label = strings.TrimSpace(label)
		bands = append(bands, band)
	}
	return bands, nil
}

func ageBandOf(bands []domain.AgeBand, age float64) (domain.AgeBand, bool) {
	for _, b := range bands {
		if b.Contains(age) {
			return b, true
		}
	}
	return domain.AgeBand{}, false
}

func requireColumns(ds *domain.Dataset, names ...string) ([]*domain.Column, error) {
	cols := make([]*domain.Column, len(names))
	for i, name := range names {
		c, ok := ds.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: missing required field '%s'", apperrors.ErrPrecondition, name)
		}
		cols[i] = c
	}
	return cols, nil
}

func amountAt(c *domain.Column, i int) decimal.Decimal {
	f, ok := c.Number(i)
	if !ok {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// ClassifyPNT11 maps every row of ds to its summary key. Unmapped coverage
// ids and vehicle types classify under empty codes; a missing age, or one
// outside every band, falls in the NaN group.
func ClassifyPNT11(ds *domain.Dataset, m domain.PNT11Mapping) ([]domain.PNT11Key, error) {
	cols, err := requireColumns(ds, domain.ColumnCoverageID, domain.ColumnTypeVehicle, domain.ColumnVehicleAge)
	if err != nil {
		return nil, err
	}
	coverage, vehicle, ages := cols[0], cols[1], cols[2]

	keys := make([]domain.PNT11Key, ds.Len())
	for i := range keys {
		k := &keys[i]
		if id, ok := coverage.Text(i); ok {
			p := m.Products[id]
			k.ProdMofCode, k.ProdMofName = p.Code, p.Name
		}
		if vt, ok := vehicle.Text(i); ok {
			v := m.VehicleTypes[vt]
			k.PNT11Code, k.PNT11Name, k.SubPNT11Code, k.SubPNT11Name = v.Code, v.Name, v.SubCode, v.SubName
		}
		k.VehicleAgeGroup, k.AgePNT11Code = domain.UnbandedAge, domain.UnbandedAge
		if age, ok := ages.Number(i); ok {
			if b, found := ageBandOf(m.AgeBands, age); found {
				k.VehicleAgeGroup, k.AgePNT11Code = b.Label, b.Code
			}
		}
	}
	return keys, nil
}

// PNT11Summary holds one partial summary row per key.
type PNT11Summary map[domain.PNT11Key]*domain.PNT11Row

func (s PNT11Summary) get(k domain.PNT11Key) *domain.PNT11Row {
	row, ok := s[k]
	if !ok {
		row = &domain.PNT11Row{PNT11Key: k}
		s[k] = row
	}
	return row
}

// distinct counts the distinct non-null values of a column per key.
type distinct map[domain.PNT11Key]map[string]struct{}

func (d distinct) add(k domain.PNT11Key, c *domain.Column, i int) {
	v, ok := c.Text(i)
	if !ok {
		return
	}
	set, found := d[k]
	if !found {
		set = make(map[string]struct{})
		d[k] = set
	}
	set[v] = struct{}{}
}

func checkKeys(ds *domain.Dataset, keys []domain.PNT11Key) error {
	if len(keys) != ds.Len() {
		return fmt.Errorf("%d keys for %d rows", len(keys), ds.Len())
	}
	return nil
}

// SummarizePremiums counts distinct registrations and sums the insured
// values and gross written premium per key.
func SummarizePremiums(ds *domain.Dataset, keys []domain.PNT11Key) (PNT11Summary, error) {
	if err := checkKeys(ds, keys); err != nil {
		return nil, err
	}
	cols, err := requireColumns(ds, domain.ColumnRegNo, domain.ColumnVehicleValue, domain.ColumnGWP)
	if err != nil {
		return nil, err
	}
	out := make(PNT11Summary)
	regNos := make(distinct)
	for i, k := range keys {
		row := out.get(k)
		regNos.add(k, cols[0], i)
		row.SumAssured = row.SumAssured.Add(amountAt(cols[1], i))
		row.GrossPremium = row.GrossPremium.Add(amountAt(cols[2], i))
	}
	for k, set := range regNos {
		out[k].NumCars = int64(len(set))
	}
	return out, nil
}

// SummarizeClaims counts distinct claims and sums the claim payments per key.
func SummarizeClaims(ds *domain.Dataset, keys []domain.PNT11Key) (PNT11Summary, error) {
	if err := checkKeys(ds, keys); err != nil {
		return nil, err
	}
	cols, err := requireColumns(ds, domain.ColumnClaimID, domain.ColumnClaimPayment)
	if err != nil {
		return nil, err
	}
	out := make(PNT11Summary)
	claimIDs := make(distinct)
	for i, k := range keys {
		row := out.get(k)
		claimIDs.add(k, cols[0], i)
		row.ClaimPayment = row.ClaimPayment.Add(amountAt(cols[1], i))
	}
	for k, set := range claimIDs {
		out[k].NumClaims = int64(len(set))
	}
	return out, nil
}

func reservesAt(cols []*domain.Column, i int) domain.ReserveAmounts {
	return domain.ReserveAmounts{UPR: amountAt(cols[0], i), OSC: amountAt(cols[1], i), LARCRes: amountAt(cols[2], i)}
}

// SummarizeReserves sums the closing reserves per key, and the opening
// reserves too when the upload carries them.
func SummarizeReserves(ds *domain.Dataset, keys []domain.PNT11Key, withOpening bool) (PNT11Summary, error) {
	if err := checkKeys(ds, keys); err != nil {
		return nil, err
	}
	closing, err := requireColumns(ds, domain.ColumnUPREnd, domain.ColumnOSCEnd, domain.ColumnLARCResEnd)
	if err != nil {
		return nil, err
	}
	var opening []*domain.Column
	if withOpening {
		if opening, err = requireColumns(ds, domain.ColumnUPRBeg, domain.ColumnOSCBeg, domain.ColumnLARCResBeg); err != nil {
			return nil, err
		}
	}

	out := make(PNT11Summary)
	for i, k := range keys {
		row := out.get(k)
		row.Closing = row.Closing.Add(reservesAt(closing, i))
		if withOpening {
			row.Opening = row.Opening.Add(reservesAt(opening, i))
		}
	}
	return out, nil
}

// SummarizeOpeningReport reads a previous PNT-11 summary: its closing
// reserves become the opening reserves of the new one.
func SummarizeOpeningReport(ds *domain.Dataset) (PNT11Summary, error) {
	keyCols, err := requireColumns(ds,
		domain.ColumnProdMofCode, domain.ColumnProdMofName,
		domain.ColumnPNT11Code, domain.ColumnPNT11Name,
		domain.ColumnSubPNT11Code, domain.ColumnSubPNT11Name,
		domain.ColumnVehicleAgeGroup, domain.ColumnAgePNT11Code)
	if err != nil {
		return nil, err
	}
	closing, err := requireColumns(ds, domain.ColumnUPREnd, domain.ColumnOSCEnd, domain.ColumnLARCResEnd)
	if err != nil {
		return nil, err
	}

	text := func(c *domain.Column, i int) string {
		v, _ := c.Text(i)
		return v
	}
	out := make(PNT11Summary)
	for i := 0; i < ds.Len(); i++ {
		k := domain.PNT11Key{
			ProdMofCode:     text(keyCols[0], i),
			ProdMofName:     text(keyCols[1], i),
			PNT11Code:       text(keyCols[2], i),
			PNT11Name:       text(keyCols[3], i),
			SubPNT11Code:    text(keyCols[4], i),
			SubPNT11Name:    text(keyCols[5], i),
			VehicleAgeGroup: text(keyCols[6], i),
			AgePNT11Code:    text(keyCols[7], i),
		}
		row := out.get(k)
		row.Opening = row.Opening.Add(reservesAt(closing, i))
	}
	return out, nil
}

// CombinePNT11 joins the summaries on their keys, keeping only keys present
// in all of them, ordered by key. opening may be nil; when present it
// supplies the opening reserves in place of the reserve upload.
func CombinePNT11(premiums, claims, reserves, opening PNT11Summary) []domain.PNT11Row {
	keys := make([]domain.PNT11Key, 0, len(premiums))
	for k := range premiums {
		if _, ok := claims[k]; !ok {
			continue
		}
		if _, ok := reserves[k]; !ok {
			continue
		}
		if opening != nil {
			if _, ok := opening[k]; !ok {
				continue
			}
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	rows := make([]domain.PNT11Row, len(keys))
	for i, k := range keys {
		row := *premiums[k]
		row.NumClaims = claims[k].NumClaims
		row.ClaimPayment = claims[k].ClaimPayment
		row.Closing = reserves[k].Closing
		row.Opening = reserves[k].Opening
		if opening != nil {
			row.Opening = opening[k].Opening
		}
		rows[i] = row
	}
	return rows
}
