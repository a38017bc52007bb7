package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var versionSegment = regexp.MustCompile(`^v\d+/`)

// CloudinaryStorage stores gallery images in Cloudinary.
type CloudinaryStorage struct {
	client *cloudinary.Cloudinary
}

var _ Storage = (*CloudinaryStorage)(nil)

// NewCloudinary creates a Cloudinary-backed storage from account credentials.
func NewCloudinary(cloudName, apiKey, apiSecret string) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryStorage{client: cld}, nil
}

// Upload stores the buffer under folder and returns the secure delivery URL.
func (s *CloudinaryStorage) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	resp, err := s.client.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder: folder,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// DeleteByURL destroys the object behind a delivery URL.
func (s *CloudinaryStorage) DeleteByURL(ctx context.Context, url string) error {
	publicID, err := PublicIDFromURL(url)
	if err != nil {
		return err
	}
	_, err = s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", publicID, err)
	}
	return nil
}

// PublicIDFromURL derives the storage identifier from a Cloudinary delivery
// URL. A URL like .../image/upload/v1712345/projects/abc123.jpg maps to the
// public ID "projects/abc123".
func PublicIDFromURL(url string) (string, error) {
	_, after, found := strings.Cut(url, "/upload/")
	if !found || after == "" {
		return "", errors.New("unrecognized storage url")
	}
	after = versionSegment.ReplaceAllString(after, "")
	if after == "" {
		return "", errors.New("unrecognized storage url")
	}
	if idx := strings.LastIndex(after, "."); idx > strings.LastIndex(after, "/") {
		after = after[:idx]
	}
	return after, nil
}
