package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CoverageSetting maps one coverage id to its MOF product line.
type CoverageSetting struct {
	Cols        string `json:"cols"`
	ProdMofCode string `json:"PROD_MOF_CODE"`
	ProdMofName string `json:"PROD_MOF_NAME"`
}

// VehicleTypeSetting maps one vehicle type to its PNT-11 group.
type VehicleTypeSetting struct {
	Cols         string `json:"cols"`
	PNT11Code    string `json:"PNT_11_CODE"`
	PNT11Name    string `json:"PNT_11_NAME"`
	SubPNT11Code string `json:"SUB_PNT_11_CODE"`
	SubPNT11Name string `json:"SUB_PNT_11_NAME"`
}

// PNTSingleSetting holds the value mappings of one variable. A nil slice
// means the variable is not configured; an empty one maps nothing.
type PNTSingleSetting struct {
	CoverageID  []CoverageSetting    `json:"COVERAGE_ID,omitempty"`
	TypeVehicle []VehicleTypeSetting `json:"TYPE_VEHICLE,omitempty"`
}

// AgeBinEdge is a bin edge given as a number or as "Infinity".
type AgeBinEdge float64

// UnmarshalJSON accepts numbers, numeric strings and "Infinity".
func (e *AgeBinEdge) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "infinity", "+infinity", "inf", "+inf":
			*e = AgeBinEdge(math.Inf(1))
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("invalid bin edge %q", s)
		}
		*e = AgeBinEdge(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*e = AgeBinEdge(f)
	return nil
}

// MarshalJSON writes "Infinity" for an open upper edge.
func (e AgeBinEdge) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(e), 1) {
		return []byte(`"Infinity"`), nil
	}
	return json.Marshal(float64(e))
}

// AgeGroupSetting describes the vehicle age bands.
type AgeGroupSetting struct {
	Bin  []AgeBinEdge `json:"bin"`
	Unit string       `json:"unit"`
}

// Edges returns the bin edges as floats.
func (s AgeGroupSetting) Edges() []float64 {
	out := make([]float64, len(s.Bin))
	for i, e := range s.Bin {
		out[i] = float64(e)
	}
	return out
}

// PNTCateSetting holds the banding of one categorical variable.
type PNTCateSetting struct {
	VehicleAgeGroup *AgeGroupSetting `json:"VEHICLE_AGE_GROUP,omitempty"`
}

// PNTSettingCols holds the mappings of a motor portfolio upload.
type PNTSettingCols struct {
	VarSingleSettings []PNTSingleSetting `json:"var_single_settings"`
	VarCateSettings   []PNTCateSetting   `json:"var_cate_settings"`
}

// PNTJsonSettings points at an imported premium, claim or reserve snapshot.
type PNTJsonSettings struct {
	TableName    string         `json:"tableName" binding:"required"`
	TemplateName string         `json:"templateName"`
	ValidStatus  string         `json:"validStatus"`
	SettingCols  PNTSettingCols `json:"setting_cols"`
}

// PNT11Request is the body of a PNT-11 motor portfolio summary.
type PNT11Request struct {
	UserName          string                  `json:"userName" binding:"required"`
	ReportCode        string                  `json:"reportCode" binding:"required"`
	ReportYear        int                     `json:"reportYear" binding:"required"`
	ReportPeriodCode  string                  `json:"reportPeriodCode" binding:"required"`
	ReportPeriodValue int                     `json:"reportPeriodValue" binding:"required"`
	GWPSettings       PNTJsonSettings         `json:"gwp_json_settings" binding:"required"`
	ClaimSettings     PNTJsonSettings         `json:"clm_json_settings" binding:"required"`
	ReserveSettings   PNTJsonSettings         `json:"res_json_settings" binding:"required"`
	BeginingReport    *OpeningBalanceSettings `json:"begining_report,omitempty"`
}

// TableName names the stored summary: user_report_year-period-value.
func (r PNT11Request) TableName() string {
	return fmt.Sprintf("%s_%s_%d-%s-%d", r.UserName, r.ReportCode, r.ReportYear, r.ReportPeriodCode, r.ReportPeriodValue)
}
