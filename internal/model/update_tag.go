package model

// UpdateTagDTO carries a partial update: a nil Name leaves the stored name
// untouched.
type UpdateTagDTO struct {
	Name *string `json:"name,omitempty"`
}
