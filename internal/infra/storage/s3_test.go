package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/config"
)

func TestPublicBase(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com",
		publicBase(&config.Config{S3PublicURL: "https://cdn.example.com/", S3Bucket: "avatars"}))

	assert.Equal(t, "http://minio:9000/avatars",
		publicBase(&config.Config{S3Endpoint: "http://minio:9000", S3Bucket: "avatars"}))

	assert.Equal(t, "https://avatars.s3.sa-east-1.amazonaws.com",
		publicBase(&config.Config{S3Bucket: "avatars", S3Region: "sa-east-1"}))
}

func TestNewS3Store(t *testing.T) {
	s := NewS3Store(&config.Config{
		S3Endpoint:  "http://minio:9000",
		S3Region:    "us-east-1",
		S3Bucket:    "avatars",
		S3AccessKey: "key",
		S3SecretKey: "secret",
	})

	assert.NotNil(t, s.client)
	assert.Equal(t, "avatars", s.bucket)
	assert.Equal(t, "http://minio:9000/avatars", s.publicURL)
}
