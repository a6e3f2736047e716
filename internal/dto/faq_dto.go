package dto

type FAQEntryDTO struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQGroupDTO struct {
	Category string         `json:"category"`
	Entries  []*FAQEntryDTO `json:"entries"`
}

type GetFAQsResponse struct {
	Available bool           `json:"available"`
	Message   string         `json:"message,omitempty"`
	Groups    []*FAQGroupDTO `json:"groups"`
}

type MatchFAQRequest struct {
	Query     string   `query:"q" validate:"required,max=500"`
	Threshold *float64 `query:"threshold" validate:"omitempty,gte=0,lte=1"`
}

type MatchFAQResponse struct {
	Matched   bool    `json:"matched"`
	Threshold float64 `json:"threshold"`
	Category  string  `json:"category,omitempty"`
	Question  string  `json:"question,omitempty"`
	Answer    string  `json:"answer,omitempty"`
	Score     float64 `json:"score,omitempty"`
	Formatted string  `json:"formatted,omitempty"`
}
