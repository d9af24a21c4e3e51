package s3

import (
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Archiver uploads saved accident logs to object storage.
type Archiver interface {
	Archive(ctx context.Context, objectName, filePath string) (string, error)
}

// Options holds the object storage connection settings.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Region    string
}

// ObjectStorage holds the minio client and target bucket.
type ObjectStorage struct {
	Conn   *minio.Client
	bucket string
	region string
}

// NewObjectStorage creates the minio client for opts. It does not contact the server.
func NewObjectStorage(opts Options) (*ObjectStorage, error) {
	conn, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}

	return &ObjectStorage{Conn: conn, bucket: opts.Bucket, region: region}, nil
}

// Archive uploads the file at filePath as objectName, creating the bucket if needed.
// It returns the bucket-qualified object path.
func (o *ObjectStorage) Archive(ctx context.Context, objectName, filePath string) (string, error) {
	if err := o.ensureBucket(ctx); err != nil {
		return "", err
	}

	info, err := o.Conn.FPutObject(ctx, o.bucket, objectName, filePath, minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", filePath, err)
	}

	return path.Join(info.Bucket, info.Key), nil
}

func (o *ObjectStorage) ensureBucket(ctx context.Context) error {
	exists, err := o.Conn.BucketExists(ctx, o.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", o.bucket, err)
	}
	if exists {
		return nil
	}

	if err := o.Conn.MakeBucket(ctx, o.bucket, minio.MakeBucketOptions{Region: o.region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", o.bucket, err)
	}
	return nil
}

// ObjectName builds the object key for an archived log.
func ObjectName(vehicleID, alertID string) string {
	if vehicleID == "" {
		vehicleID = "unknown-vehicle"
	}
	return path.Join(vehicleID, alertID+".json")
}
