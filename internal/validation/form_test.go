package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blogly-service/internal/validation"
)

func TestCheck_UserForm(t *testing.T) {
	tests := []struct {
		name        string
		form        validation.UserForm
		wantValid   bool
		wantMissing []string
	}{
		{
			name:      "valid form",
			form:      validation.UserForm{FirstName: "Alan", LastName: "Alda"},
			wantValid: true,
		},
		{
			name:        "missing first name",
			form:        validation.UserForm{LastName: "Alda"},
			wantMissing: []string{"first_name"},
		},
		{
			name:        "missing both names",
			form:        validation.UserForm{ImageURL: "https://example.com/a.png"},
			wantMissing: []string{"first_name", "last_name"},
		},
		{
			name:      "whitespace counts as present",
			form:      validation.UserForm{FirstName: " ", LastName: " "},
			wantValid: true,
		},
		{
			name:      "image url is optional",
			form:      validation.UserForm{FirstName: "Alan", LastName: "Alda"},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validation.Check(tt.form)

			assert.Equal(t, tt.wantValid, result.Valid)
			assert.Len(t, result.Missing, len(tt.wantMissing))
			for _, field := range tt.wantMissing {
				assert.True(t, result.Missing[field], "expected %s to be reported missing", field)
			}
		})
	}
}

func TestCheck_PostForm(t *testing.T) {
	tests := []struct {
		name        string
		form        validation.PostForm
		wantValid   bool
		wantMissing []string
	}{
		{
			name:      "valid form",
			form:      validation.PostForm{Title: "Test Post", Content: "Test content"},
			wantValid: true,
		},
		{
			name:        "missing title",
			form:        validation.PostForm{Content: "Test content"},
			wantMissing: []string{"title"},
		},
		{
			name:        "missing content",
			form:        validation.PostForm{Title: "Test Post"},
			wantMissing: []string{"content"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validation.Check(tt.form)

			assert.Equal(t, tt.wantValid, result.Valid)
			assert.Len(t, result.Missing, len(tt.wantMissing))
			for _, field := range tt.wantMissing {
				assert.True(t, result.Missing[field])
			}
		})
	}
}

func TestCheck_TagForm(t *testing.T) {
	result := validation.Check(validation.TagForm{Name: "funny"})
	assert.True(t, result.Valid)

	result = validation.Check(validation.TagForm{})
	assert.False(t, result.Valid)
	assert.True(t, result.Missing["tag_name"])
}
