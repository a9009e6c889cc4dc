package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Storage abstracts where deliverable files and job posters live. The media
// resolver is the only consumer; it addresses objects by key and hands public
// URLs to the rest of the system.
type Storage interface {
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns the public URL for a stored object.
	GetURL(ctx context.Context, key string) (string, error)

	// GetSignedURL returns a temporary URL; backends without signing fall
	// back to the public URL.
	GetSignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	GetSize(ctx context.Context, key string) (int64, error)
}

// Config selects and parameterizes a backend.
type Config struct {
	Type       string // local, s3, cloudflare_r2
	BasePath   string // local only
	BaseURL    string // public URL base
	Bucket     string
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string // R2 or custom S3 endpoint
	PublicRead bool
}

func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	case "cloudflare_r2":
		return NewR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
