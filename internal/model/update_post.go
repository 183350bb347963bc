package model

// UpdatePostDTO carries a partial update for title/content; nil fields are
// left untouched. TagIDs is the full desired tag set and is always
// reconciled against the stored associations, so an empty set clears them.
type UpdatePostDTO struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	TagIDs  []int64 `json:"tag_ids"`
}
