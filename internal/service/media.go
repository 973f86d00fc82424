package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/nutricoach/backend/config"
)

const presignExpiry = 15 * time.Minute

// ErrForeignObject is returned when a key falls outside the caller's
// folder.
var ErrForeignObject = errors.New("object belongs to another user")

// MediaObject describes one stored image.
type MediaObject struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// MediaService stores user-submitted food images in the object store.
// Every user gets a folder named after the local part of their email
// address; all operations are scoped to that prefix.
type MediaService struct {
	s3Config *config.S3Config
}

// NewMediaService creates a new MediaService instance.
func NewMediaService(s3Config *config.S3Config) *MediaService {
	return &MediaService{s3Config: s3Config}
}

// UserFolder derives the per-user storage folder from the email address:
// the local part, everything before the '@'.
func UserFolder(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

// Upload stores the image under the user's folder and returns the object
// key. A uuid suffix keeps repeated uploads of the same filename from
// overwriting each other.
func (s *MediaService) Upload(ctx context.Context, email, fileName, contentType string, body io.Reader) (string, error) {
	ext := path.Ext(fileName)
	key := fmt.Sprintf("%s/%s%s", UserFolder(email), uuid.New().String(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	log.Printf("[MediaService] uploaded %s for %s", key, email)
	return key, nil
}

// List returns every object in the user's folder.
func (s *MediaService) List(ctx context.Context, email string) ([]MediaObject, error) {
	out, err := s.s3Config.Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.s3Config.BucketName),
		Prefix: aws.String(UserFolder(email) + "/"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}

	objects := make([]MediaObject, 0, len(out.Contents))
	for _, obj := range out.Contents {
		objects = append(objects, MediaObject{
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
		})
	}
	return objects, nil
}

// PresignedURL returns a time-limited download URL for one of the user's
// objects. The key must live inside the user's folder.
func (s *MediaService) PresignedURL(ctx context.Context, email, key string) (string, error) {
	if !strings.HasPrefix(key, UserFolder(email)+"/") {
		return "", fmt.Errorf("%w: %s", ErrForeignObject, key)
	}
	return s.s3Config.GeneratePresignedURL(ctx, key, presignExpiry)
}

// Delete removes one of the user's objects.
func (s *MediaService) Delete(ctx context.Context, email, key string) error {
	if !strings.HasPrefix(key, UserFolder(email)+"/") {
		return fmt.Errorf("%w: %s", ErrForeignObject, key)
	}
	_, err := s.s3Config.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
