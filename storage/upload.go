package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	minioSDK "github.com/minio/minio-go/v7"
)

// ErrUploadFailed wraps any blob store failure.
var ErrUploadFailed = errors.New("upload failed")

// UploadResult mirrors the payload dashboards expect from /upload.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// UploadImage decodes a base64 image payload (with or without a data-URL
// prefix) and stores it under the given folder, returning the public URL
// and object id.
func UploadImage(ctx context.Context, image, folder string) (*UploadResult, error) {
	contentType, data, err := decodeImagePayload(image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	objectName := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), extensionFor(contentType))
	_, err = Client.PutObject(ctx, BucketName, objectName, bytes.NewReader(data), int64(len(data)),
		minioSDK.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	return &UploadResult{
		URL:      publicURL(objectName),
		PublicID: objectName,
	}, nil
}

// decodeImagePayload accepts "data:image/png;base64,AAAA..." or a bare
// base64 string (treated as image/jpeg, matching the report camera output).
func decodeImagePayload(image string) (contentType string, data []byte, err error) {
	contentType = "image/jpeg"
	payload := image

	if strings.HasPrefix(image, "data:") {
		header, rest, ok := strings.Cut(image, ",")
		if !ok {
			return "", nil, errors.New("malformed data URL")
		}
		payload = rest
		header = strings.TrimPrefix(header, "data:")
		if mime, _, found := strings.Cut(header, ";"); found && mime != "" {
			contentType = mime
		}
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 image: %v", err)
	}
	if len(data) == 0 {
		return "", nil, errors.New("empty image payload")
	}
	return contentType, data, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
