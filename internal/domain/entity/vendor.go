package entity

type Vendor struct {
	ID           int64    `json:"id"`
	UserID       int64    `json:"user_id"`
	BusinessName string   `json:"business_name"`
	Description  string   `json:"description,omitempty"`
	Location     string   `json:"location,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	LogoURL      string   `json:"logo_url,omitempty"`
	BannerURL    string   `json:"banner_url,omitempty"`
	Rating       float64  `json:"rating"`
}

type VendorUpdate struct {
	BusinessName *string
	Description  *string
	Location     *string
	Tags         *[]string
	LogoURL      *string
	BannerURL    *string
	Rating       *float64
}

func (up VendorUpdate) Apply(v *Vendor) {
	if up.BusinessName != nil {
		v.BusinessName = *up.BusinessName
	}
	if up.Description != nil {
		v.Description = *up.Description
	}
	if up.Location != nil {
		v.Location = *up.Location
	}
	if up.Tags != nil {
		tags := make([]string, len(*up.Tags))
		copy(tags, *up.Tags)
		v.Tags = tags
	}
	if up.LogoURL != nil {
		v.LogoURL = *up.LogoURL
	}
	if up.BannerURL != nil {
		v.BannerURL = *up.BannerURL
	}
	if up.Rating != nil {
		v.Rating = *up.Rating
	}
}
