package model

// UpdateUserDTO carries a partial update: nil fields are left untouched.
type UpdateUserDTO struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	ImageURL  *string `json:"image_url,omitempty"`
}
