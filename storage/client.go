package storage

import (
	"context"
	"fmt"
	"log"
	"os"

	minioSDK "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	Client     *minioSDK.Client
	BucketName string

	endpoint string
	useSSL   bool
)

// InitMinio connects the blob store client and ensures the bucket exists.
func InitMinio() {
	endpoint = os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL = os.Getenv("MINIO_USE_SSL") == "true"
	BucketName = os.Getenv("MINIO_BUCKET")
	if BucketName == "" {
		BucketName = "citylens"
	}

	if endpoint == "" {
		log.Fatal("Please define the MINIO_ENDPOINT environment variable")
	}

	client, err := minioSDK.New(endpoint, &minioSDK.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, BucketName)
	if err != nil {
		log.Fatalf("Failed to check bucket existence: %v", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, BucketName, minioSDK.MakeBucketOptions{}); err != nil {
			log.Fatalf("Failed to create bucket %s: %v", BucketName, err)
		}
		log.Printf("Bucket created: %s", BucketName)
	}

	Client = client
	log.Println("Connected to MinIO")
}

// publicURL builds the retrieval URL for an uploaded object. MINIO_PUBLIC_URL
// overrides the endpoint when the store sits behind a CDN or proxy.
func publicURL(objectName string) string {
	if base := os.Getenv("MINIO_PUBLIC_URL"); base != "" {
		return fmt.Sprintf("%s/%s/%s", base, BucketName, objectName)
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, endpoint, BucketName, objectName)
}
