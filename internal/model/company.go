package model

import (
	"fmt"
)

// CompanyRecord is one row of the company dimension table
type CompanyRecord struct {
	Symbol            string   `json:"symbol" db:"sym" validate:"required,max=16"`
	CompanyName       string   `json:"company_name" db:"cn"`
	Sector            string   `json:"sector" db:"sec" validate:"required"`
	Industry          string   `json:"industry" db:"ind" validate:"required"`
	ClassificationTag string   `json:"classification_tag" db:"spst" validate:"required"`
	Exchange          string   `json:"exchange,omitempty" db:"exchange"`
	PriceToSales      *float64 `json:"ps,omitempty" db:"ps" validate:"omitempty,gte=0"`
}

// Complete reports whether every field the filters look at is present.
// Incomplete records never match an active filter and never contribute options.
func (r CompanyRecord) Complete() bool {
	return r.Symbol != "" && r.Sector != "" && r.Industry != "" && r.ClassificationTag != ""
}

// Label is the text shown in the symbol selector
func (r CompanyRecord) Label() string {
	if r.CompanyName == "" {
		return r.Symbol
	}
	return fmt.Sprintf("%s - %s", r.Symbol, r.CompanyName)
}

// CompanyRow is a CompanyRecord decorated for the grid display
type CompanyRow struct {
	CompanyRecord
	Label   string `json:"label"`
	LogoURL string `json:"logo_url,omitempty"`
}

// SimilarCompany is a row of the vector similarity search
type SimilarCompany struct {
	Symbol          string  `json:"symbol" db:"sym"`
	ValuationString string  `json:"valuation_string" db:"valuation_string"`
	ValuationSim    float64 `json:"valuation_similarity" db:"cos_sim_val"`
	ValuationDiff   float64 `json:"valuation_distance" db:"cos_dif_val"`
	TrendString     string  `json:"trend_string" db:"trend_string"`
	TrendSim        float64 `json:"trend_similarity" db:"cos_sim_trend"`
	TrendDiff       float64 `json:"trend_distance" db:"cos_dif_trend"`
}
