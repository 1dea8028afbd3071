package mediastore

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const (
	articleDir    = "articles"
	thumbnailDir  = "thumbnails"
	ThumbnailSize = 480 // width in pixels, height follows aspect ratio

	// sniffLen is how many bytes http.DetectContentType needs at most.
	sniffLen = 512
)

// Store saves article media to local disk and optionally mirrors it to S3.
type Store struct {
	config *Config
	mirror *MirrorClient
}

// NewStore creates a media store from the given config. When the S3 mirror
// is enabled but unreachable the store still works locally.
func NewStore(cfg *Config) *Store {
	store := &Store{config: cfg}

	if cfg.MirrorEnabled {
		mirror, err := NewMirrorClient(cfg)
		if err != nil {
			log.Warnf("[MediaStore] S3 mirror unavailable, continuing local-only: %v", err)
		} else {
			store.mirror = mirror
		}
	}

	return store
}

// NewStoreFromEnv creates a media store configured from environment variables.
func NewStoreFromEnv() (*Store, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewStore(cfg), nil
}

// SaveFeaturedImage validates and stores an uploaded article image. It
// returns the public URL path of the stored original. A scaled-down
// thumbnail is written next to it, and both are mirrored to S3 when the
// mirror is configured.
func (s *Store) SaveFeaturedImage(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, sniffLen)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if _, err := ValidateImageBySniff(fileHeader.Filename, head[:n]); err != nil {
		return "", err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	imageUUID := uuid.New().String()
	fileName := imageUUID + ext

	targetDir := filepath.Join(s.config.Root, articleDir)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	targetPath := filepath.Join(targetDir, fileName)
	dst, err := os.Create(targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(targetPath)
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(targetPath)
		return "", fmt.Errorf("failed to close media file: %w", err)
	}

	if err := s.writeThumbnail(targetPath, fileName); err != nil {
		// the original is still usable without a thumbnail
		log.Warnf("[MediaStore] failed to create thumbnail for %s: %v", fileName, err)
	}

	if s.mirror != nil {
		now := time.Now()
		objectKey := s.config.GetObjectKey(imageUUID, ext, now.Year(), int(now.Month()))
		go func() {
			if err := s.mirror.UploadFile(context.Background(), targetPath, objectKey); err != nil {
				log.Errorf("[MediaStore] mirror upload failed for %s: %v", objectKey, err)
			}
		}()
	}

	return path.Join(s.config.PublicPath, articleDir, fileName), nil
}

// writeThumbnail renders the scaled-down variant of a stored original.
func (s *Store) writeThumbnail(originalPath, fileName string) error {
	img, err := imaging.Open(originalPath)
	if err != nil {
		return err
	}

	thumb := imaging.Resize(img, ThumbnailSize, 0, imaging.Lanczos)

	thumbDir := filepath.Join(s.config.Root, articleDir, thumbnailDir)
	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		return err
	}

	return imaging.Save(thumb, filepath.Join(thumbDir, fileName))
}

// Delete removes a stored image and its thumbnail given the public URL
// path returned by SaveFeaturedImage. Unknown paths are ignored.
func (s *Store) Delete(publicPath string) error {
	prefix := path.Join(s.config.PublicPath, articleDir) + "/"
	if !strings.HasPrefix(publicPath, prefix) {
		return nil
	}

	fileName := path.Base(publicPath)
	if fileName == "." || fileName == "/" {
		return nil
	}

	if err := os.Remove(filepath.Join(s.config.Root, articleDir, fileName)); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(filepath.Join(s.config.Root, articleDir, thumbnailDir, fileName)); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
