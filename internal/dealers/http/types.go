package http

import "github.com/gbtraders/storefront-api/internal/dealers/repository"

type Handler struct {
	repo *repository.DealerRepository
}

func New(repo *repository.DealerRepository) *Handler {
	return &Handler{repo: repo}
}

// saveProfileRequest is a full profile write. Required-field completeness is
// not enforced here so onboarding can save drafts; see the validation route.
type saveProfileRequest struct {
	BusinessName string `json:"businessName"`
	Email        string `json:"email" binding:"omitempty,email"`
	Phone        string `json:"phone"`
	Logo         string `json:"logo"`
	Banner       string `json:"banner"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Country      string `json:"country"`
	Description  string `json:"description" binding:"max=2000"`
	Website      string `json:"website" binding:"omitempty,url"`
	Facebook     string `json:"facebook" binding:"omitempty,url"`
	Instagram    string `json:"instagram" binding:"omitempty,url"`
	Twitter      string `json:"twitter" binding:"omitempty,url"`
}

// patchProfileRequest only writes the fields that are present.
type patchProfileRequest struct {
	BusinessName *string `json:"businessName"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone"`
	Logo         *string `json:"logo"`
	Banner       *string `json:"banner"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	Country      *string `json:"country"`
	Description  *string `json:"description" binding:"omitempty,max=2000"`
	Website      *string `json:"website" binding:"omitempty,url"`
	Facebook     *string `json:"facebook" binding:"omitempty,url"`
	Instagram    *string `json:"instagram" binding:"omitempty,url"`
	Twitter      *string `json:"twitter" binding:"omitempty,url"`
}

func (r *patchProfileRequest) fields() map[string]any {
	out := map[string]any{}
	set := func(name string, v *string) {
		if v != nil {
			out[name] = *v
		}
	}
	set("businessName", r.BusinessName)
	set("email", r.Email)
	set("phone", r.Phone)
	set("logo", r.Logo)
	set("banner", r.Banner)
	set("address", r.Address)
	set("city", r.City)
	set("country", r.Country)
	set("description", r.Description)
	set("website", r.Website)
	set("facebook", r.Facebook)
	set("instagram", r.Instagram)
	set("twitter", r.Twitter)
	return out
}
