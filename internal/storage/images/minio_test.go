package images

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/laptop_store/internal/config"
)

type fakePutter struct {
	bucket, object, contentType string
	data                        []byte
	err                         error
}

func (f *fakePutter) PutObject(ctx context.Context, bucket, object string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.err != nil {
		return minio.UploadInfo{}, f.err
	}
	f.bucket, f.object, f.contentType = bucket, object, opts.ContentType
	f.data, _ = io.ReadAll(r)
	return minio.UploadInfo{Bucket: bucket, Key: object, Size: size}, nil
}

func TestPublicBase(t *testing.T) {
	assert.Equal(t, "http://minio:9000", publicBase(config.Minio{Endpoint: "minio:9000"}))
	assert.Equal(t, "https://minio:9000", publicBase(config.Minio{Endpoint: "minio:9000", UseSSL: true}))
	assert.Equal(t, "https://cdn.example.com", publicBase(config.Minio{Endpoint: "minio:9000", PublicURL: "https://cdn.example.com/"}))
}

func TestPutImage(t *testing.T) {
	fp := &fakePutter{}
	s := &Store{client: fp, bucket: "laptop-images", baseURL: "http://minio:9000"}

	url, err := s.PutImage(context.Background(), "laptops/l1/pic one.png", strings.NewReader("png-bytes"), 9, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/laptop-images/laptops/l1/pic%20one.png", url)
	assert.Equal(t, "laptop-images", fp.bucket)
	assert.Equal(t, "image/png", fp.contentType)
	assert.Equal(t, "png-bytes", string(fp.data))
}

func TestPutImageError(t *testing.T) {
	s := &Store{client: &fakePutter{err: errors.New("denied")}, bucket: "b", baseURL: "http://m"}
	_, err := s.PutImage(context.Background(), "k", strings.NewReader("x"), 1, "image/png")
	require.ErrorContains(t, err, "denied")
}
