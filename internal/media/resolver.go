// Package media turns inbound media payloads (base64 data URIs or
// pre-hosted URLs) into stable hosted URLs backed by the storage layer,
// and releases them again when their owning record goes away.
package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"vfxworks_backend/internal/storage"
	"vfxworks_backend/pkg/apperrors"
)

var extensionByMIME = map[string]string{
	"image/png":        "png",
	"image/jpeg":       "jpg",
	"image/gif":        "gif",
	"image/webp":       "webp",
	"video/mp4":        "mp4",
	"video/quicktime":  "mov",
	"application/pdf":  "pdf",
	"application/zip":  "zip",
	"image/x-exr":      "exr",
	"application/json": "json",
}

type Resolver struct {
	store   storage.Storage
	urlBase string
	maxSize int64
}

// NewResolver wires a resolver over a storage backend. maxSize bounds the
// decoded size of embedded payloads; zero means unlimited.
func NewResolver(store storage.Storage, maxSize int64) (*Resolver, error) {
	base, err := store.GetURL(context.Background(), "")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage URL base: %w", err)
	}
	return &Resolver{
		store:   store,
		urlBase: strings.TrimSuffix(base, "/"),
		maxSize: maxSize,
	}, nil
}

// Ingest accepts either a data URI ("data:<mime>;base64,<payload>") or an
// already-hosted URL. Data URIs are decoded and persisted under the given
// category; hosted URLs pass through untouched.
func (r *Resolver) Ingest(ctx context.Context, payload, category string) (string, error) {
	if payload == "" {
		return "", apperrors.ValidationError("media payload is empty")
	}

	if !strings.HasPrefix(payload, "data:") {
		if strings.HasPrefix(payload, "http://") || strings.HasPrefix(payload, "https://") ||
			strings.HasPrefix(payload, "/") {
			return payload, nil
		}
		return "", apperrors.ValidationError("media payload must be a data URI or a URL")
	}

	mimeType, data, err := decodeDataURI(payload)
	if err != nil {
		return "", err
	}
	if r.maxSize > 0 && int64(len(data)) > r.maxSize {
		return "", apperrors.ValidationError("media payload exceeds the upload size limit")
	}

	key := fmt.Sprintf("%s/%s.%s", category, uuid.NewString(), extensionFor(mimeType))
	if err := r.store.Save(ctx, key, strings.NewReader(string(data)), mimeType); err != nil {
		return "", fmt.Errorf("failed to store media: %w", err)
	}
	return r.store.GetURL(ctx, key)
}

// Release deletes a managed object. URLs this resolver does not manage are
// ignored so callers can release unconditionally.
func (r *Resolver) Release(ctx context.Context, url string) error {
	if !r.IsManagedURL(url) {
		return nil
	}
	key := strings.TrimPrefix(url, r.urlBase+"/")
	return r.store.Delete(ctx, key)
}

// IsManagedURL reports whether the URL points into this resolver's storage.
func (r *Resolver) IsManagedURL(url string) bool {
	return url != "" && strings.HasPrefix(url, r.urlBase+"/")
}

func decodeDataURI(payload string) (mimeType string, data []byte, err error) {
	rest := strings.TrimPrefix(payload, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", nil, apperrors.ValidationError("media payload must be base64-encoded")
	}

	mimeType = rest[:sep]
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	data, err = base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return "", nil, apperrors.ValidationError("media payload is not valid base64")
	}
	return mimeType, data, nil
}

func extensionFor(mimeType string) string {
	if ext, ok := extensionByMIME[mimeType]; ok {
		return ext
	}
	if _, sub, found := strings.Cut(mimeType, "/"); found && sub != "" && sub != "octet-stream" {
		return sub
	}
	return "bin"
}
