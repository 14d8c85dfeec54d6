package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/SafatUddin/CAR-Hub/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader stores listing media and returns a public URL. The core only keeps
// the returned reference; file count/type validation happens at the handler
// boundary.
type Uploader interface {
	UploadImage(ctx context.Context, file io.Reader, filename string) (string, error)
	UploadDocument(ctx context.Context, file io.Reader, filename string) (string, error)
}

type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cfg config.Config) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: cfg.CloudinaryUploadFolder}, nil
}

func (u *CloudinaryUploader) UploadImage(ctx context.Context, file io.Reader, filename string) (string, error) {
	res, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       u.folder + "/car_images",
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("upload image %s: %w", filename, err)
	}
	return res.SecureURL, nil
}

func (u *CloudinaryUploader) UploadDocument(ctx context.Context, file io.Reader, filename string) (string, error) {
	res, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       u.folder + "/registration_docs",
		ResourceType: "raw",
	})
	if err != nil {
		return "", fmt.Errorf("upload document %s: %w", filename, err)
	}
	return res.SecureURL, nil
}
