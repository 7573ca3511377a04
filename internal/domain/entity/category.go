package entity

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

type CategoryUpdate struct {
	Name        *string
	Description *string
	ImageURL    *string
}

func (up CategoryUpdate) Apply(c *Category) {
	if up.Name != nil {
		c.Name = *up.Name
	}
	if up.Description != nil {
		c.Description = *up.Description
	}
	if up.ImageURL != nil {
		c.ImageURL = *up.ImageURL
	}
}
