// Package assets issues presigned object-storage URLs for file-field
// uploads, so attachment bytes never pass through the API server.
package assets

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lumenarts/forge/internal/config"
)

const presignTTL = 15 * time.Minute

type objectLister interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Object describes one stored attachment.
type Object struct {
	Key      string    `json:"key"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// Service hands out upload and download URLs for template attachments.
type Service struct {
	presign *s3.PresignClient
	lister  objectLister
	bucket  string
	log     *zap.Logger
}

// New builds the S3 client from configuration. The endpoint override
// supports MinIO and other S3-compatible stores.
func New(ctx context.Context, cfg config.AssetsConfig, log *zap.Logger) (*Service, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("assets: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Service{
		presign: s3.NewPresignClient(client),
		lister:  client,
		bucket:  cfg.Bucket,
		log:     log,
	}, nil
}

// StorageKey places an attachment under its template and field, with a
// random component so repeat uploads never collide.
func StorageKey(templateID, fieldID, filename string) string {
	return path.Join("templates", templateID, fieldID, uuid.NewString()+path.Ext(filename))
}

// UploadURL returns the storage key and a short-lived PUT URL for it.
func (s *Service) UploadURL(ctx context.Context, templateID, fieldID, filename string) (string, string, error) {
	key := StorageKey(templateID, fieldID, filename)
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", "", fmt.Errorf("assets: presign put %s: %w", key, err)
	}
	s.log.Debug("issued upload url", zap.String("key", key))
	return key, req.URL, nil
}

// List returns the attachments stored under a template, newest key last.
func (s *Service) List(ctx context.Context, templateID string) ([]Object, error) {
	prefix := path.Join("templates", templateID) + "/"
	var objects []Object
	var token *string
	for {
		out, err := s.lister.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("assets: list %s: %w", prefix, err)
		}
		for _, item := range out.Contents {
			obj := Object{Key: aws.ToString(item.Key)}
			if item.Size != nil {
				obj.Size = *item.Size
			}
			if item.LastModified != nil {
				obj.Modified = *item.LastModified
			}
			objects = append(objects, obj)
		}
		if out.IsTruncated == nil || !*out.IsTruncated {
			return objects, nil
		}
		token = out.NextContinuationToken
	}
}

// DownloadURL returns a short-lived GET URL for a previously stored key.
func (s *Service) DownloadURL(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", fmt.Errorf("assets: presign get %s: %w", key, err)
	}
	return req.URL, nil
}
