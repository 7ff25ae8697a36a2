package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/agriance/contractgen/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const pdfContentType = "application/pdf"

// MinioService archives generated contract PDFs in an object store.
type MinioService struct {
	client *minio.Client
	bucket string
	config *config.MinioConfig
}

func NewMinioService(cfg *config.MinioConfig) (*MinioService, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinioService{
		client: client,
		bucket: cfg.Bucket,
		config: cfg,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (s *MinioService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// ObjectName returns where a contract's PDF is stored:
// <tenant>/<contract number>/<filename>.
func ObjectName(tenant, number, filename string) string {
	return path.Join(cleanSegment(tenant), cleanSegment(number), cleanSegment(filename))
}

func cleanSegment(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "/", "_"))
	if s == "" || s == "." || s == ".." {
		return "_"
	}
	return s
}

// attachment is the Content-Disposition of an archived contract.
func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}

// Archive uploads a rendered PDF tagged with its tenant and contract number
// and returns the object name and a download URL. The URL is presigned
// unless the bucket is configured as public.
func (s *MinioService) Archive(ctx context.Context, tenant, number, filename string, pdf []byte) (string, string, error) {
	objectName := ObjectName(tenant, number, filename)
	opts := minio.PutObjectOptions{
		ContentType:        pdfContentType,
		ContentDisposition: attachment(filename),
		UserMetadata: map[string]string{
			"Tenant":          tenant,
			"Contract-Number": number,
		},
	}
	if err := s.put(ctx, objectName, bytes.NewReader(pdf), int64(len(pdf)), opts); err != nil {
		return "", "", err
	}

	if s.config.Public {
		return objectName, s.GetPublicURL(objectName), nil
	}
	link, err := s.GetPresignedURL(ctx, objectName, filename)
	if err != nil {
		return objectName, "", err
	}
	return objectName, link, nil
}

func (s *MinioService) put(ctx context.Context, objectName string, reader io.Reader, size int64, opts minio.PutObjectOptions) error {
	if _, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, opts); err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	return nil
}

// GetPresignedURL returns a time-limited download URL for the object. The
// URL makes the browser save the PDF as filename.
func (s *MinioService) GetPresignedURL(ctx context.Context, objectName, filename string) (string, error) {
	expiry := time.Duration(s.config.ExpireDays) * 24 * time.Hour
	params := url.Values{}
	if filename != "" {
		params.Set("response-content-disposition", attachment(filename))
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, expiry, params)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return u.String(), nil
}

// DeleteFile deletes a file from MINIO
func (s *MinioService) DeleteFile(ctx context.Context, objectName string) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GetPublicURL returns the unsigned URL of the object, usable when the
// bucket allows anonymous reads.
func (s *MinioService) GetPublicURL(objectName string) string {
	u := url.URL{
		Scheme: "http",
		Host:   s.config.Endpoint,
		Path:   "/" + path.Join(s.bucket, objectName),
	}
	if s.config.UseSSL {
		u.Scheme = "https"
	}
	return u.String()
}
