package models

// FSSAIRecord represents a food-business license as returned by the FSSAI
// verification API.
type FSSAIRecord struct {
	LicenseNumber   string   `json:"license_number"`
	BusinessName    string   `json:"business_name"`
	LicenseType     string   `json:"license_type"`
	Status          string   `json:"status"`
	LicenseCategory string   `json:"license_category"`
	PremiseAddress  string   `json:"premise_address"`
	State           string   `json:"state"`
	District        string   `json:"district"`
	Products        []string `json:"products"`
	IssuedOn        string   `json:"issued_on"`
	ValidUpto       string   `json:"valid_upto"`
	ContactEmail    string   `json:"contact_email,omitempty"`
	ContactMobile   string   `json:"contact_mobile,omitempty"`
}

// FSSAI license status values
const (
	FSSAIStatusActive    = "Active"
	FSSAIStatusExpired   = "Expired"
	FSSAIStatusSuspended = "Suspended"
	FSSAIStatusCancelled = "Cancelled"
)
