package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/Amrit-pandey/airbnb-clone/internal/server/config"
)

// Seams for tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}

	fetchURL = func(ctx context.Context, url string) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		return http.DefaultClient.Do(req)
	}
)

// maxLinkedImageSize bounds how much of a remote image upload-by-link reads.
const maxLinkedImageSize = 32 << 20

// UploadService stores listing photos in S3-compatible object storage and
// returns their public URLs. Authorization is the caller's concern: any
// authenticated user may upload.
type UploadService struct {
	config *sc.Config
}

func NewUploadService(config *sc.Config) *UploadService {
	return &UploadService{config: config}
}

// storageKey builds a date-partitioned random object key preserving the
// original file extension.
func storageKey(filename string) string {
	d := time.Now()
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("photos/%d/%02d/%02d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

func (s *UploadService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3AccessKey,
			s.config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		}
	})

	return client, nil
}

// Upload stores the bytes under a generated key and returns the public URL.
func (s *UploadService) Upload(ctx context.Context, data []byte, filename, mimeType string) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	key := storageKey(filename)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading object: %w", err)
	}

	return strings.TrimRight(s.config.S3PublicBaseURL, "/") + "/" + key, nil
}

// UploadByLink fetches a remote image over HTTP and stores it like Upload.
// A failed or non-200 fetch is the caller's bad-gateway case, not a server
// fault.
func (s *UploadService) UploadByLink(ctx context.Context, link string) (string, error) {
	resp, err := fetchURL(ctx, link)
	if err != nil {
		return "", fmt.Errorf("error fetching image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("error fetching image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLinkedImageSize))
	if err != nil {
		return "", fmt.Errorf("error reading image: %w", err)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	return s.Upload(ctx, data, path.Base(link), mimeType)
}
