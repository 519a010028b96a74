package publish

import (
	"bytes"
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/ssr/internal/errors"
)

// ObjectPutter is the subset of *s3.Client used by S3Publisher.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads objects to one bucket.
type S3Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
	now    func() time.Time
}

// NewS3Publisher creates a publisher for bucket.
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	pub := publish.NewS3Publisher(s3.NewFromConfig(cfg), "my-bucket")
func NewS3Publisher(client ObjectPutter, bucket string) *S3Publisher {
	return &S3Publisher{
		client: client,
		bucket: bucket,
		now:    time.Now,
	}
}

// WithPrefix sets a key prefix such as "fragments/".
func (p *S3Publisher) WithPrefix(prefix string) *S3Publisher {
	p.prefix = prefix
	return p
}

// Publish uploads obj and returns its s3:// location.
func (p *S3Publisher) Publish(ctx context.Context, obj Object) (string, error) {
	if obj.Key == "" {
		return "", errors.New("E042").WithDetail("object key is empty")
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = DefaultContentType
	}

	metadata := map[string]string{
		"rendered-at": p.now().UTC().Format(time.RFC3339),
	}
	for k, v := range obj.Metadata {
		metadata[k] = v
	}

	key := p.prefix + obj.Key
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(obj.Body),
		ContentLength: aws.Int64(int64(len(obj.Body))),
		ContentType:   aws.String(contentType),
		Metadata:      metadata,
	})
	if err != nil {
		return "", errors.New("E042").WithDetailf("s3://%s/%s", p.bucket, key).Wrap(err)
	}

	return "s3://" + p.bucket + "/" + key, nil
}
