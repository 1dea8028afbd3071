package mediastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetObjectKey(t *testing.T) {
	cfg := &Config{BucketName: "storypress-media"}

	key := cfg.GetObjectKey("0b51a1de-6131-4d4a-9f2c-8a4f8f1c0c55", ".jpg", 2026, 3)
	assert.Equal(t, "articles/2026/03/0b51a1de-6131-4d4a-9f2c-8a4f8f1c0c55.jpg", key)
}

func TestValidateImageBySniff(t *testing.T) {
	pngHead := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

	mime, err := ValidateImageBySniff("cover.png", pngHead)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	_, err = ValidateImageBySniff("cover.svg", []byte("<svg></svg>"))
	assert.Error(t, err)

	_, err = ValidateImageBySniff("cover.png", []byte("<html><body>x</body></html>"))
	assert.Error(t, err)

	_, err = ValidateImageBySniff("script.exe", pngHead)
	assert.Error(t, err)
}

func TestLoadConfigRequiresMirrorCredentials(t *testing.T) {
	t.Setenv("S3_MIRROR_ENABLED", "true")
	t.Setenv("S3_ACCESS_KEY_ID", "")
	t.Setenv("S3_SECRET_ACCESS_KEY", "")
	t.Setenv("S3_BUCKET_NAME", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestDeleteIgnoresForeignPaths(t *testing.T) {
	store := NewStore(&Config{Root: t.TempDir(), PublicPath: "/uploads"})

	assert.NoError(t, store.Delete("https://cdn.example.com/pic.jpg"))
	assert.NoError(t, store.Delete("/uploads/articles/missing.jpg"))
}
