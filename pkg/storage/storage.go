package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Provider represents a storage provider type
type Provider string

const (
	ProviderS3    Provider = "s3"
	ProviderLocal Provider = "local"
)

// Config holds storage configuration
type Config struct {
	Provider  Provider `json:"provider"`
	Bucket    string   `json:"bucket"`
	Region    string   `json:"region"`
	Endpoint  string   `json:"endpoint"` // For S3-compatible storage
	AccessKey string   `json:"access_key"`
	SecretKey string   `json:"secret_key"`
	BaseURL   string   `json:"base_url"` // Public URL prefix
}

// UploadResult contains the result of an upload operation
type UploadResult struct {
	Key        string    `json:"key"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mime_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// PresignedURLResult contains a presigned URL for direct upload/download
type PresignedURLResult struct {
	URL       string            `json:"url"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers,omitempty"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// Storage interface defines the storage operations
type Storage interface {
	// Upload uploads a file to storage
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*UploadResult, error)

	// Download downloads a file from storage
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete deletes a file from storage
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for a file
	GetURL(key string) string

	// GetPresignedDownloadURL generates a presigned URL for direct download
	GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (*PresignedURLResult, error)

	// Exists checks if a file exists
	Exists(ctx context.Context, key string) (bool, error)
}

// GenerateItineraryExportKey generates a unique storage key for an exported
// itinerary document.
func GenerateItineraryExportKey(tripID uuid.UUID, format string) string {
	uniqueID := uuid.New().String()[:8]
	timestamp := time.Now().Format("20060102")

	// Format: exports/itineraries/{trip_id}/{timestamp}_{unique_id}.{format}
	return fmt.Sprintf("exports/itineraries/%s/%s_%s.%s",
		tripID.String(),
		timestamp,
		uniqueID,
		strings.ToLower(format),
	)
}

// GenerateChartReportKey generates a unique storage key for a rendered
// forecast chart report.
func GenerateChartReportKey(destination string, start time.Time) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(destination), " ", "-"))
	uniqueID := uuid.New().String()[:8]

	return fmt.Sprintf("reports/charts/%s/%s_%s.html",
		slug,
		start.Format("20060102"),
		uniqueID,
	)
}

// ContentTypeForFormat maps an export format to its MIME type.
func ContentTypeForFormat(format string) string {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "json":
		return "application/json"
	case "html":
		return "text/html; charset=utf-8"
	case "csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
