package media

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader sends an image payload to a media host and returns a durable URL.
type Uploader interface {
	Upload(ctx context.Context, image string) (string, error)
}

// CloudinaryClient uploads images through the Cloudinary SDK.
type CloudinaryClient struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryClient creates a client for the given Cloudinary account.
func NewCloudinaryClient(cloudName, apiKey, apiSecret, folder string) (*CloudinaryClient, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}

	return &CloudinaryClient{
		cld:    cld,
		folder: folder,
	}, nil
}

// Upload sends a base64 data URI or remote URL to Cloudinary and returns the
// hosted secure URL.
func (c *CloudinaryClient) Upload(ctx context.Context, image string) (string, error) {
	resp, err := c.cld.Upload.Upload(ctx, image, uploader.UploadParams{
		Folder: c.folder,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	// API-level failures surface in the result, not the returned error
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary returned no secure_url")
	}

	return resp.SecureURL, nil
}
