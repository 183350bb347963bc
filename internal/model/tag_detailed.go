package model

type TagDetailed struct {
	Tag   *Tag    `json:"tag,omitempty"`
	Posts []*Post `json:"posts,omitempty"`
}
