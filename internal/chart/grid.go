package chart

// MaxGridHeight caps the company grid height in pixels
const MaxGridHeight = 500

const gridRowHeight = 29

// GridColumn describes one column of the company grid
type GridColumn struct {
	Field     string `json:"field"`
	Header    string `json:"header"`
	Numeric   bool   `json:"numeric,omitempty"`
	Precision int    `json:"precision,omitempty"`
	Pinned    string `json:"pinned,omitempty"`
}

// GridSpec is the display configuration of the company grid
type GridSpec struct {
	Columns       []GridColumn `json:"columns"`
	Height        int          `json:"height"`
	SelectionMode string       `json:"selection_mode"`
	Filterable    bool         `json:"filterable"`
}

// GridHeight is one header row plus one row per record, capped at MaxGridHeight
func GridHeight(rows int) int {
	h := (1 + rows) * gridRowHeight
	if h > MaxGridHeight {
		return MaxGridHeight
	}
	return h
}

// CompanyGrid returns the grid spec for a page of rows
func CompanyGrid(rows int) GridSpec {
	return GridSpec{
		Columns: []GridColumn{
			{Field: "logo_url", Header: "Logo"},
			{Field: "company_name", Header: "Company Name"},
			{Field: "symbol", Header: "Symbol", Pinned: "left"},
			{Field: "classification_tag", Header: "SPST"},
			{Field: "industry", Header: "Industry"},
			{Field: "sector", Header: "Sector"},
			{Field: "ps", Header: "PS", Numeric: true, Precision: 2},
		},
		Height:        GridHeight(rows),
		SelectionMode: "multiple",
		Filterable:    true,
	}
}
