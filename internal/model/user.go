package model

// DefaultUserImageURL is stored for users created without an avatar and is
// served by the static avatar route.
const DefaultUserImageURL = "/static/uploads/default_user.png"

type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ImageURL  string `json:"image_url"`
}
