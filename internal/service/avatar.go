package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/launchbase/backend/config"
)

// ErrUnsupportedAvatarType is returned for content types other than the
// supported image formats.
var ErrUnsupportedAvatarType = errors.New("unsupported avatar content type")

// AvatarService stores profile pictures in S3. The resulting public URL
// is what ends up in the profile's avatar_url column.
type AvatarService struct {
	s3Config *config.S3Config
}

// Ensure AvatarService implements IAvatarService
var _ IAvatarService = (*AvatarService)(nil)

func NewAvatarService(s3Config *config.S3Config) *AvatarService {
	return &AvatarService{s3Config: s3Config}
}

var allowedAvatarTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// UploadAvatar uploads the image and returns its public URL. The key
// includes a fresh UUID so a re-upload never collides with a cached
// previous avatar.
func (s *AvatarService) UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, body io.Reader) (string, error) {
	ext, ok := allowedAvatarTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnsupportedAvatarType, contentType)
	}

	key := fmt.Sprintf("avatars/%s/%s.%s", userID, uuid.New(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[AvatarService] Uploaded avatar for user %s to %s", userID, url)
	return url, nil
}
