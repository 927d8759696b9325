package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"griyapasar/pkg/logger"
)

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var documentTypes = map[string]string{
	"application/pdf": ".pdf",
}

type CloudStorageClient struct {
	client          *storage.Client
	bucketName      string
	projectID       string
	maxImageSize    int64
	maxDocumentSize int64
}

func NewCloudStorageClient(ctx context.Context, bucketName, projectID, credentialsPath string, maxImageSize, maxDocumentSize int64) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	storageClient := &CloudStorageClient{
		client:          client,
		bucketName:      bucketName,
		projectID:       projectID,
		maxImageSize:    maxImageSize,
		maxDocumentSize: maxDocumentSize,
	}

	if err := storageClient.setBucketCORS(ctx); err != nil {
		logger.Warn("Failed to set CORS configuration: %v", err)
	}

	return storageClient, nil
}

func (c *CloudStorageClient) setBucketCORS(ctx context.Context) error {
	bucket := c.client.Bucket(c.bucketName)

	corsConfig := storage.CORS{
		MaxAge:          3600,
		Methods:         []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		Origins:         []string{"*"}, // Replace with your domains in production
		ResponseHeaders: []string{"Content-Type", "x-goog-resumable"},
	}

	bucketAttrs, err := bucket.Attrs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bucket attributes: %v", err)
	}

	if len(bucketAttrs.CORS) == 0 {
		bucketUpdate := storage.BucketAttrsToUpdate{
			CORS: []storage.CORS{corsConfig},
		}

		_, err := bucket.Update(ctx, bucketUpdate)
		if err != nil {
			return fmt.Errorf("failed to update bucket CORS: %v", err)
		}
	}

	return nil
}

// ValidateUpload checks type and size limits before any byte is written.
// Images allow the image types up to the image limit; documents (license
// scans) allow pdf or an image up to the document limit.
func (c *CloudStorageClient) ValidateUpload(fileType string, size int64, category string) error {
	switch category {
	case "image":
		if _, ok := imageTypes[fileType]; !ok {
			return fmt.Errorf("unsupported image type %s", fileType)
		}
		if size > c.maxImageSize {
			return fmt.Errorf("image exceeds %d byte limit", c.maxImageSize)
		}
	case "document":
		_, isDoc := documentTypes[fileType]
		_, isImg := imageTypes[fileType]
		if !isDoc && !isImg {
			return fmt.Errorf("unsupported document type %s", fileType)
		}
		if size > c.maxDocumentSize {
			return fmt.Errorf("document exceeds %d byte limit", c.maxDocumentSize)
		}
	default:
		return fmt.Errorf("unknown upload category %s", category)
	}
	return nil
}

// ObjectPath builds the canonical object layout:
// <entityType>/<ownerId>/<category>/<generated filename>.
func ObjectPath(entityType, ownerID, category, fileType string) string {
	filename := fmt.Sprintf("%s-%s", uuid.New().String(), time.Now().Format("20060102150405"))
	if ext, ok := imageTypes[fileType]; ok {
		filename += ext
	} else if ext, ok := documentTypes[fileType]; ok {
		filename += ext
	} else {
		filename += ".bin"
	}
	return fmt.Sprintf("%s/%s/%s/%s", entityType, ownerID, category, filename)
}

func (c *CloudStorageClient) UploadFile(ctx context.Context, file io.Reader, fileType, objectPath string, isPublic bool) (string, error) {
	obj := c.client.Bucket(c.bucketName).Object(objectPath)
	wc := obj.NewWriter(ctx)
	wc.ContentType = fileType
	wc.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(wc, file); err != nil {
		return "", fmt.Errorf("failed to copy file to GCS: %v", err)
	}

	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %v", err)
	}

	if isPublic {
		if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
			return "", fmt.Errorf("failed to set ACL: %v", err)
		}
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, objectPath), nil
}

func (c *CloudStorageClient) DeleteFile(ctx context.Context, fileURL string) error {
	// Expected URL format: https://storage.googleapis.com/bucket-name/file-path
	const prefix = "https://storage.googleapis.com/"
	if !strings.HasPrefix(fileURL, prefix) {
		return fmt.Errorf("invalid GCS URL format")
	}

	path := fileURL[len(prefix):]
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] != c.bucketName {
		return fmt.Errorf("invalid GCS URL format or bucket mismatch")
	}

	objectName := parts[1]

	obj := c.client.Bucket(c.bucketName).Object(objectName)
	if err := obj.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}

	return nil
}

func (c *CloudStorageClient) GenerateSignedUploadURL(ctx context.Context, fileType, objectPath string) (string, error) {
	opts := &storage.SignedURLOptions{
		Method:      http.MethodPut,
		ContentType: fileType,
		Expires:     time.Now().Add(15 * time.Minute),
	}

	url, err := c.client.Bucket(c.bucketName).SignedURL(objectPath, opts)
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %v", err)
	}

	return url, nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
