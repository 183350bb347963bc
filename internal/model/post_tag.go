package model

// PostTag is an association row: its existence means "this post carries
// this tag". The (PostID, TagID) pair is unique.
type PostTag struct {
	PostID int64 `json:"post_id"`
	TagID  int64 `json:"tag_id"`
}
