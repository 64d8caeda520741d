package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"agency-console/internal/logger"
	"agency-console/internal/timeutil"
)

// Options configures the bucket. Endpoint is required for R2 and other
// S3 compatible stores; leave it empty for AWS.
type Options struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Prefix    string
	// PathStyle addresses the bucket in the path instead of the host name.
	PathStyle bool
}

// Archive stores generated invoice documents in an S3 compatible bucket.
type Archive struct {
	client *s3.Client
	bucket string
	prefix string
	log    zerolog.Logger
}

// Object is one archived document.
type Object struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

func New(ctx context.Context, opts Options) (*Archive, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("archive: bucket is required")
	}
	region := opts.Region
	if region == "" {
		region = "auto"
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("archive: configure client: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.PathStyle
		// R2 rejects the default streaming checksums.
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})

	return &Archive{
		client: client,
		bucket: opts.Bucket,
		prefix: strings.Trim(opts.Prefix, "/"),
		log:    logger.WithComponent("archive"),
	}, nil
}

// Key is where a document lands: prefix/YYYY/MM/name, month in IST.
func (a *Archive) Key(name string, at time.Time) string {
	ist := timeutil.ToIST(at)
	return path.Join(a.prefix, fmt.Sprintf("%04d", ist.Year()), fmt.Sprintf("%02d", int(ist.Month())), name)
}

// PutPDF uploads a rendered invoice and returns its key.
func (a *Archive) PutPDF(ctx context.Context, name string, data []byte) (string, error) {
	key := a.Key(name, timeutil.Now())
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		a.log.Error().Err(err).Str("key", key).Msg("Failed to archive invoice")
		return "", fmt.Errorf("archive %s: %w", key, err)
	}
	a.log.Info().Str("key", key).Int("bytes", len(data)).Msg("Invoice archived")
	return key, nil
}

// List returns archived documents under the configured prefix.
func (a *Archive) List(ctx context.Context) ([]Object, error) {
	prefix := a.prefix
	if prefix != "" {
		prefix += "/"
	}
	out, err := a.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}

	objects := make([]Object, 0, len(out.Contents))
	for _, obj := range out.Contents {
		o := Object{Key: aws.ToString(obj.Key), Size: aws.ToInt64(obj.Size)}
		if obj.LastModified != nil {
			o.LastModified = *obj.LastModified
		}
		objects = append(objects, o)
	}
	return objects, nil
}
