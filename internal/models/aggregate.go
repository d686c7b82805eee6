package models

// CategoryCount is one entry of a per-category tally.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// FacilityFilter narrows a facility listing. Zero-valued fields do not filter.
type FacilityFilter struct {
	Published *bool            `form:"published" json:"published,omitempty"`
	Category  FacilityCategory `form:"category" json:"category,omitempty"`
	LGA       string           `form:"lga" json:"lga,omitempty"`
	State     string           `form:"state" json:"state,omitempty"`
}

// DashboardSummary is the tally rendered on the home dashboard.
type DashboardSummary struct {
	PropertiesByLandUse   []CategoryCount `json:"propertiesByLandUse"`
	FacilitiesByCategory  []CategoryCount `json:"facilitiesByCategory"`
	TotalProperties       int64           `json:"totalProperties"`
	TotalFacilities       int64           `json:"totalFacilities"`
	PublishedFacilities   int64           `json:"publishedFacilities"`
	UnpublishedFacilities int64           `json:"unpublishedFacilities"`
}
