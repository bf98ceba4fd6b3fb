package images

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectGetter is the subset of *s3.Client used by S3Source.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config selects the object store. Empty credentials fall back to the
// default AWS chain; a non-empty Endpoint targets MinIO or another
// S3-compatible service with path-style addressing.
type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// S3Source reads images referenced as s3://bucket/key.
type S3Source struct {
	api      ObjectGetter
	MaxBytes int64
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

func NewS3Source(ctx context.Context, c S3Config) (*S3Source, error) {
	opts := []func(*config.LoadOptions) error{}
	if c.Region != "" {
		opts = append(opts, config.WithRegion(c.Region))
	}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3SourceWithClient(client), nil
}

func NewS3SourceWithClient(api ObjectGetter) *S3Source {
	return &S3Source{api: api}
}

func (s *S3Source) Open(ctx context.Context, ref string) (Image, error) {
	bucket, key, err := parseS3Ref(ref)
	if err != nil {
		return Image{}, err
	}

	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return Image{}, fmt.Errorf("get %s: %w", ref, err)
	}
	defer out.Body.Close()

	max := s.MaxBytes
	if max == 0 {
		max = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(out.Body, max+1))
	if err != nil {
		return Image{}, fmt.Errorf("read %s: %w", ref, err)
	}
	if int64(len(data)) > max {
		return Image{}, fmt.Errorf("%s: image exceeds %d bytes", ref, max)
	}

	name := path.Base(key)
	t := aws.ToString(out.ContentType)
	if !strings.HasPrefix(t, "image/") {
		if t, err = DetectType(name, data); err != nil {
			return Image{}, err
		}
	}
	return Image{Name: name, Type: t, Data: data}, nil
}

func parseS3Ref(ref string) (bucket, key string, err error) {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "s3" || u.Host == "" || strings.Trim(u.Path, "/") == "" {
		return "", "", fmt.Errorf("%w: %q is not s3://bucket/key", ErrUnsupportedSource, ref)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}
