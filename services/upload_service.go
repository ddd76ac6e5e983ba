package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/nejmigmc-soft/landmarkweb/config"
)

// UploadService signs direct-to-bucket PUT uploads for listing images.
// The API never proxies image bytes; the browser PUTs straight to the
// bucket with the signed URL.
const signedUploadTTL = 60 * time.Second

type UploadService struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// SignedUpload is the response of the sign endpoint: where to PUT the
// file and where it will be served from afterwards.
type SignedUpload struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	Key       string `json:"key"`
}

// NewUploadService connects to the configured S3-compatible endpoint.
// Returns an error when the storage is not configured; the caller decides
// whether to run without upload signing.
func NewUploadService(cfg *config.Config) (*UploadService, error) {
	if cfg.S3Endpoint == "" || cfg.S3AccessKey == "" || cfg.S3SecretKey == "" || cfg.S3Bucket == "" {
		return nil, errors.New("object storage is not configured")
	}

	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.S3Endpoint, "https://"), "http://")
	// Region pinned so presigning never probes the bucket location.
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
		Region: "us-east-1",
	})
	if err != nil {
		return nil, err
	}

	return &UploadService{
		client:    client,
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimRight(cfg.S3PublicURL, "/"),
	}, nil
}

// SignPut issues a pre-signed PUT URL valid for 60 seconds, keyed by
// "properties/<unix-ms>-<fileName>". The signature pins the content type
// the client declared.
func (s *UploadService) SignPut(ctx context.Context, fileName, contentType string) (*SignedUpload, error) {
	key := fmt.Sprintf("properties/%d-%s", time.Now().UnixMilli(), fileName)

	headers := http.Header{}
	if contentType != "" {
		headers.Set("Content-Type", contentType)
	}

	u, err := s.client.PresignHeader(ctx, http.MethodPut, s.bucket, key, signedUploadTTL, url.Values{}, headers)
	if err != nil {
		return nil, err
	}

	return &SignedUpload{
		UploadURL: u.String(),
		PublicURL: s.publicURL + "/" + key,
		Key:       key,
	}, nil
}
