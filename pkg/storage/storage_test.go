package storage_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopdata/config"
	"github.com/shashiranjanraj/shopdata/pkg/storage"
)

func TestLocalDiskLifecycle(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	disk, err := storage.NewLocal(root)
	require.NoError(t, err)
	assert.Equal(t, root, disk.Root())

	ok, err := disk.Exists(ctx, "exports/a.csv")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, disk.Put(ctx, "exports/a.csv", []byte("id\n1\n")))
	ok, err = disk.Exists(ctx, "exports/a.csv")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(root, "exports", "a.csv"), disk.Location("exports/a.csv"))

	rc, err := disk.GetStream(ctx, "exports/a.csv")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "id\n1\n", string(data))

	require.NoError(t, disk.Put(ctx, "exports/a.csv", []byte("id\n")))
	data, err = os.ReadFile(filepath.Join(root, "exports", "a.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id\n", string(data))
}

func TestLocalDiskDirectoryIsNotAFile(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "orders.csv"), 0o755))

	disk, err := storage.NewLocal(root)
	require.NoError(t, err)
	ok, err := disk.Exists(ctx, "orders.csv")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalDiskExistsReportsStatErrors(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "plain"), []byte("x"), 0o644))

	disk, err := storage.NewLocal(root)
	require.NoError(t, err)

	// A path through a regular file fails with ENOTDIR, not ENOENT.
	_, err = disk.Exists(context.Background(), "plain/orders.csv")
	assert.Error(t, err)
}

func TestLocalDiskGetMissing(t *testing.T) {
	disk, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = disk.GetStream(context.Background(), "nope.csv")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewS3RequiresBucket(t *testing.T) {
	_, err := storage.NewS3(context.Background(), storage.S3Config{Region: "us-east-1"})
	assert.Error(t, err)
}

func TestS3Location(t *testing.T) {
	disk, err := storage.NewS3(context.Background(), storage.S3Config{
		Bucket:   "shop",
		Region:   "us-east-1",
		Key:      "k",
		Secret:   "s",
		Endpoint: "http://127.0.0.1:9000",
		Prefix:   "/exports/",
	})
	require.NoError(t, err)
	assert.Equal(t, "s3://shop/exports/orders.csv", disk.Location("./orders.csv"))
}

// s3Stub answers HEAD requests: here.csv exists, gone.csv is absent and
// everything else is forbidden.
func s3Stub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/here.csv"):
			w.Header().Set("Content-Length", "0")
			w.WriteHeader(http.StatusOK)
		case strings.HasSuffix(r.URL.Path, "/gone.csv"):
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestS3ExistsSeparatesAbsenceFromFailure(t *testing.T) {
	ctx := context.Background()
	srv := s3Stub(t)

	disk, err := storage.NewS3(ctx, storage.S3Config{
		Bucket:   "shop",
		Region:   "us-east-1",
		Key:      "k",
		Secret:   "s",
		Endpoint: srv.URL,
	})
	require.NoError(t, err)

	ok, err := disk.Exists(ctx, "here.csv")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = disk.Exists(ctx, "gone.csv")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = disk.Exists(ctx, "secret.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage/s3: head secret.csv")
}

func TestFromConfigS3Prefix(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envPath, []byte(
		"STORAGE_DISK=s3\nS3_BUCKET=shop\nS3_KEY=k\nS3_SECRET=s\nS3_ENDPOINT=http://127.0.0.1:9000\nS3_PREFIX=exports/daily\n"), 0o644))
	require.NoError(t, config.LoadFrom("", envPath))

	disk, err := storage.FromConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "s3://shop/exports/daily/orders.csv", disk.Location("orders.csv"))
}

func TestFromConfig(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(envPath, []byte("STORAGE_DISK=local\nSTORAGE_LOCAL_ROOT="+dir+"\n"), 0o644))
	require.NoError(t, config.LoadFrom("", envPath))

	disk, err := storage.FromConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "x.csv"), disk.Location("x.csv"))

	require.NoError(t, os.WriteFile(envPath, []byte("STORAGE_DISK=ftp\n"), 0o644))
	require.NoError(t, config.LoadFrom("", envPath))

	_, err = storage.FromConfig(context.Background())
	assert.Error(t, err)
}
