package models

// IdentityRecord is a personal identity profile from the PAN verification API.
type IdentityRecord struct {
	PAN           string `json:"pan"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Status        string `json:"status"`
	AadhaarSeeded bool   `json:"aadhaar_seeded"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	LastUpdated   string `json:"last_updated,omitempty"`
}

// NewsArticle is a single news result parsed from the upstream news search.
type NewsArticle struct {
	Title       string `json:"title"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	Summary     string `json:"summary,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}
