package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostCategoryValid(t *testing.T) {
	for _, c := range PostCategories {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, PostCategory("meme").Valid())
	assert.False(t, PostCategory("").Valid())
}

func TestPostHasMedia(t *testing.T) {
	empty := ""
	url := "https://res.cloudinary.com/demo/image/upload/v1/posts/1/a.png"

	assert.False(t, (&Post{}).HasMedia())
	assert.False(t, (&Post{MediaURL: &empty}).HasMedia())
	assert.True(t, (&Post{MediaURL: &url}).HasMedia())
}

func TestStudentHasPassword(t *testing.T) {
	empty := ""
	hash := "$2a$10$abc"

	assert.False(t, (&Student{}).HasPassword())
	assert.False(t, (&Student{Password: &empty}).HasPassword())
	assert.True(t, (&Student{Password: &hash}).HasPassword())
}
