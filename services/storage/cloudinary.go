package storage

import (
	"context"
	"fmt"

	"swatrental/config"
	"swatrental/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryReceiptStore uploads inline receipts to Cloudinary.
type CloudinaryReceiptStore struct {
	upload uploadAPI
}

// NewCloudinaryReceiptStore creates a store from API credentials.
func NewCloudinaryReceiptStore(cloudName, apiKey, apiSecret string) (*CloudinaryReceiptStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryReceiptStore{upload: &cld.Upload}, nil
}

// Save uploads a data URI into receipts/<bookingID> and returns its secure URL.
// URLs and other references are kept as they are.
func (s *CloudinaryReceiptStore) Save(ctx context.Context, bookingID, receipt string) (string, error) {
	if !IsDataURI(receipt) {
		return receipt, nil
	}

	result, err := s.upload.Upload(ctx, receipt, uploader.UploadParams{
		Folder:       "receipts/" + bookingID,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("storage: failed to upload receipt: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("storage: upload rejected: %s", result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("storage: no secure URL returned")
	}
	return result.SecureURL, nil
}

// NewReceiptStore picks Cloudinary when credentials are configured and falls back to pass-through.
func NewReceiptStore(cfg config.Config) ReceiptStore {
	logger := utils.GetLogger()
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		logger.Info("Cloudinary not configured; receipts stored as submitted")
		return PassThroughStore{}
	}
	store, err := NewCloudinaryReceiptStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		logger.Warn("Cloudinary unavailable; receipts stored as submitted", zap.Error(err))
		return PassThroughStore{}
	}
	return store
}
