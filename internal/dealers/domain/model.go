package domain

import (
	"errors"
	"time"
)

// Collection holds one dealer profile per user, keyed by uid.
const Collection = "dealers"

var ErrDealerProfileNotFound = errors.New("dealer profile not found")

// RequiredFields must all be non-empty for a profile to be complete.
var RequiredFields = []string{
	"businessName",
	"email",
	"phone",
	"address",
	"city",
	"country",
	"description",
	"logo",
}

type DealerProfile struct {
	UID          string    `json:"uid" firestore:"uid"`
	BusinessName string    `json:"businessName" firestore:"businessName"`
	Email        string    `json:"email" firestore:"email"`
	Phone        string    `json:"phone" firestore:"phone"`
	Logo         string    `json:"logo" firestore:"logo"`
	Banner       string    `json:"banner" firestore:"banner"`
	Address      string    `json:"address" firestore:"address"`
	City         string    `json:"city" firestore:"city"`
	Country      string    `json:"country" firestore:"country"`
	Description  string    `json:"description" firestore:"description"`
	Website      string    `json:"website,omitempty" firestore:"website,omitempty"`
	Facebook     string    `json:"facebook,omitempty" firestore:"facebook,omitempty"`
	Instagram    string    `json:"instagram,omitempty" firestore:"instagram,omitempty"`
	Twitter      string    `json:"twitter,omitempty" firestore:"twitter,omitempty"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// ValidationResult is derived on read and never stored.
type ValidationResult struct {
	IsComplete    bool           `json:"isComplete"`
	Profile       *DealerProfile `json:"profile"`
	MissingFields []string       `json:"missingFields"`
}

// MissingFields lists the required fields that are empty, in RequiredFields order.
func (p *DealerProfile) MissingFields() []string {
	values := map[string]string{
		"businessName": p.BusinessName,
		"email":        p.Email,
		"phone":        p.Phone,
		"address":      p.Address,
		"city":         p.City,
		"country":      p.Country,
		"description":  p.Description,
		"logo":         p.Logo,
	}

	missing := []string{}
	for _, f := range RequiredFields {
		if values[f] == "" {
			missing = append(missing, f)
		}
	}
	return missing
}
