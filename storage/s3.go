package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Blob implements Blob backed by a single S3 object.
type S3Blob struct {
	bucket      string
	key         string
	contentType string
	s3          *s3.Client
}

func NewS3Blob(s3Client *s3.Client, bucket, key, contentType string) *S3Blob {
	return &S3Blob{
		bucket:      bucket,
		key:         key,
		contentType: contentType,
		s3:          s3Client,
	}
}

func (s *S3Blob) Load(ctx context.Context) ([]byte, error) {
	resp, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get object s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (s *S3Blob) Save(ctx context.Context, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
		Body:   bytes.NewReader(data),
	}
	if s.contentType != "" {
		input.ContentType = aws.String(s.contentType)
	}
	if _, err := s.s3.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to put object s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return nil
}

func (s *S3Blob) Delete(ctx context.Context) error {
	_, err := s.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return nil
}
