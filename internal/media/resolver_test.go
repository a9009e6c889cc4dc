package media

import (
	"context"
	"encoding/base64"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vfxworks_backend/internal/storage"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	store, err := storage.NewLocalStorage(storage.Config{
		BasePath: t.TempDir(),
		BaseURL:  "http://media.test",
	})
	require.NoError(t, err)

	resolver, err := NewResolver(store, 1<<20)
	require.NoError(t, err)
	return resolver
}

func TestIngestDataURI(t *testing.T) {
	resolver := newTestResolver(t)
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake png bytes"))

	url, err := resolver.Ingest(context.Background(), payload, "posters")
	require.NoError(t, err)
	assert.Contains(t, url, "http://media.test/posters/")
	assert.Contains(t, url, ".png")
	assert.True(t, resolver.IsManagedURL(url))
}

func TestIngestHostedURLPassesThrough(t *testing.T) {
	resolver := newTestResolver(t)

	hosted := "https://cdn.example.com/reels/shot.mp4"
	url, err := resolver.Ingest(context.Background(), hosted, "deliverables")
	require.NoError(t, err)
	assert.Equal(t, hosted, url)
	assert.False(t, resolver.IsManagedURL(url))
}

func TestIngestRejectsGarbage(t *testing.T) {
	resolver := newTestResolver(t)

	_, err := resolver.Ingest(context.Background(), "", "posters")
	assert.Error(t, err)

	_, err = resolver.Ingest(context.Background(), "not a url at all", "posters")
	assert.Error(t, err)

	_, err = resolver.Ingest(context.Background(), "data:image/png;base64,!!!not-base64!!!", "posters")
	assert.Error(t, err)
}

func TestIngestEnforcesSizeLimit(t *testing.T) {
	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	resolver, err := NewResolver(store, 8)
	require.NoError(t, err)

	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("way more than eight bytes"))
	_, err = resolver.Ingest(context.Background(), payload, "posters")
	assert.Error(t, err)
}

func TestReleaseDeletesManagedObject(t *testing.T) {
	store, err := storage.NewLocalStorage(storage.Config{
		BasePath: t.TempDir(),
		BaseURL:  "http://media.test",
	})
	require.NoError(t, err)
	resolver, err := NewResolver(store, 0)
	require.NoError(t, err)

	payload := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("contract terms"))
	url, err := resolver.Ingest(context.Background(), payload, "docs")
	require.NoError(t, err)

	key := url[len("http://media.test/"):]
	exists, err := store.Exists(context.Background(), key)
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, resolver.Release(context.Background(), url))
	exists, err = store.Exists(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, exists)

	// Unmanaged URLs are a no-op, not an error.
	assert.NoError(t, resolver.Release(context.Background(), "https://cdn.example.com/x.png"))
}

func TestIngestRoundTripContent(t *testing.T) {
	store, err := storage.NewLocalStorage(storage.Config{
		BasePath: t.TempDir(),
		BaseURL:  "http://media.test",
	})
	require.NoError(t, err)
	resolver, err := NewResolver(store, 0)
	require.NoError(t, err)

	original := []byte("SEQ010_SH0040 comp v003")
	payload := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(original)
	url, err := resolver.Ingest(context.Background(), payload, "deliverables")
	require.NoError(t, err)

	key := url[len("http://media.test/"):]
	reader, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	defer reader.Close()

	stored, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, original, stored)
}
