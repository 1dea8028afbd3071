package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world", Slugify("Hello World"))
	assert.Equal(t, "go-1-25-released", Slugify("Go 1.25, Released!"))
	assert.Equal(t, "tech", Slugify("  Tech  "))
	assert.Equal(t, "a-b", Slugify("a---b"))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestSlugifyIdempotent(t *testing.T) {
	slug := Slugify("Hello World")
	assert.Equal(t, slug, Slugify(slug))
}

func TestSlugToName(t *testing.T) {
	assert.Equal(t, "machine learning", SlugToName("machine-learning"))
	assert.Equal(t, "tech", SlugToName("tech"))
}
