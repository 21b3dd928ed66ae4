package entities

// SuggestionType tags the category a search suggestion came from.
type SuggestionType string

const (
	SuggestionTypeBusiness SuggestionType = "business"
	SuggestionTypeService  SuggestionType = "service"
	SuggestionTypeCity     SuggestionType = "city"
)

// Suggestion is a transient, derived search suggestion. Business suggestions
// carry the matched vendor; service and city suggestions carry only a name.
type Suggestion struct {
	Type   SuggestionType `json:"type"`
	Name   string         `json:"name"`
	Vendor *Vendor        `json:"vendor,omitempty"`
}
