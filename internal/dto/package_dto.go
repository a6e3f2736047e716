package dto

// GetPackagesRequest carries the filter selection. Empty values mean "All".
type GetPackagesRequest struct {
	Type     string   `query:"type" validate:"max=100"`
	Length   string   `query:"length" validate:"max=100"`
	Hand     string   `query:"hand" validate:"max=100"`
	Side     string   `query:"side" validate:"max=100"`
	MaxPrice *float64 `query:"max_price" validate:"omitempty,gte=0"`
}

type PackageCardDTO struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Length      string  `json:"length"`
	Hand        string  `json:"hand"`
	Side        string  `json:"side"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
}

type SelectionDTO struct {
	Type     string  `json:"type"`
	Length   string  `json:"length"`
	Hand     string  `json:"hand"`
	Side     string  `json:"side"`
	MaxPrice float64 `json:"max_price"`
}

type PriceRangeDTO struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Fixed bool    `json:"fixed"`
}

type GetPackagesResponse struct {
	Available     bool                `json:"available"`
	Message       string              `json:"message,omitempty"`
	Selection     SelectionDTO        `json:"selection"`
	Options       map[string][]string `json:"options"`
	PriceRange    PriceRangeDTO       `json:"price_range"`
	Reset         []string            `json:"reset,omitempty"` // attributes whose stale selection fell back to "All"
	Rows          [][]*PackageCardDTO `json:"rows"`
	Total         int                 `json:"total"`
	Shown         int                 `json:"shown"`
	HasMore       bool                `json:"has_more"`
	ShowMoreLabel string              `json:"show_more_label,omitempty"`
}
