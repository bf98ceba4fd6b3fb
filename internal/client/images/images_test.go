package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestSelect_TruncatesToThree(t *testing.T) {
	got := Select([]string{"1", "2", "3", "4", "5"})
	assert.Equal(t, []string{"1", "2", "3"}, got)

	assert.Equal(t, []string{"1"}, Select([]string{"1"}))
	assert.Empty(t, Select([]string(nil)))
}

func TestEncode_NoDataURLPrefix(t *testing.T) {
	out := Encode([]Image{{Name: "a.png", Type: "image/png", Data: []byte("hello")}})
	require.Len(t, out, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("hello")), out[0].Base64)
	assert.NotContains(t, out[0].Base64, "data:")
	assert.Equal(t, "a.png", out[0].Name)
	assert.Equal(t, "image/png", out[0].Type)
}

func TestDetectType(t *testing.T) {
	typ, err := DetectType("shot.JPG", nil)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", typ)

	typ, err = DetectType("noext", pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "image/png", typ)

	_, err = DetectType("notes", []byte("plain text here"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "screen.png")
	require.NoError(t, os.WriteFile(p, pngHeader, 0o600))

	img, err := FileSource{}.Open(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "screen.png", img.Name)
	assert.Equal(t, "image/png", img.Type)
	assert.Equal(t, pngHeader, img.Data)

	_, err = FileSource{MaxBytes: 4}.Open(context.Background(), p)
	assert.Error(t, err)

	_, err = FileSource{}.Open(context.Background(), filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

type fakeS3 struct {
	in   *s3.GetObjectInput
	body []byte
	ct   *string
	err  error
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.body)), ContentType: f.ct}, nil
}

func TestS3Source(t *testing.T) {
	f := &fakeS3{body: pngHeader, ct: aws.String("image/png")}
	src := NewS3SourceWithClient(f)

	img, err := src.Open(context.Background(), "s3://shots/apps/planner/1.png")
	require.NoError(t, err)
	assert.Equal(t, "shots", aws.ToString(f.in.Bucket))
	assert.Equal(t, "apps/planner/1.png", aws.ToString(f.in.Key))
	assert.Equal(t, "1.png", img.Name)
	assert.Equal(t, "image/png", img.Type)
}

func TestS3Source_SniffsWhenContentTypeMissing(t *testing.T) {
	src := NewS3SourceWithClient(&fakeS3{body: pngHeader, ct: aws.String("binary/octet-stream")})
	img, err := src.Open(context.Background(), "s3://b/k")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.Type)
}

func TestS3Source_Errors(t *testing.T) {
	src := NewS3SourceWithClient(&fakeS3{err: errors.New("NoSuchKey")})
	_, err := src.Open(context.Background(), "s3://b/k.png")
	assert.ErrorContains(t, err, "NoSuchKey")

	for _, ref := range []string{"s3://bucket-only", "s3:///key", "http://b/k"} {
		_, err := src.Open(context.Background(), ref)
		assert.ErrorIs(t, err, ErrUnsupportedSource, ref)
	}

	big := &S3Source{api: &fakeS3{body: bytes.Repeat([]byte{1}, 10)}, MaxBytes: 5}
	_, err = big.Open(context.Background(), "s3://b/k.png")
	assert.ErrorContains(t, err, "exceeds")
}

func TestNewS3Source_UsesLoadedConfig(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	var nopts int
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		nopts = len(optFns)
		return aws.Config{Region: "eu-central-1"}, nil
	}

	src, err := NewS3Source(context.Background(), S3Config{Region: "eu-central-1", Endpoint: "http://minio:9000", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	assert.NotNil(t, src)
	assert.Equal(t, 2, nopts)

	loadDefaultAWSConfig = func(context.Context, ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no creds")
	}
	_, err = NewS3Source(context.Background(), S3Config{})
	assert.ErrorContains(t, err, "no creds")
}

type stubSource struct{ refs []string }

func (s *stubSource) Open(_ context.Context, ref string) (Image, error) {
	s.refs = append(s.refs, ref)
	return Image{Name: ref, Type: "image/png"}, nil
}

func TestRouter(t *testing.T) {
	files, objects := &stubSource{}, &stubSource{}
	r := Router{Files: files, S3: objects}

	imgs, err := Load(context.Background(), r, []string{"a.png", "s3://b/k.png"})
	require.NoError(t, err)
	assert.Len(t, imgs, 2)
	assert.Equal(t, []string{"a.png"}, files.refs)
	assert.Equal(t, []string{"s3://b/k.png"}, objects.refs)

	_, err = r.Open(context.Background(), "https://example.org/x.png")
	assert.ErrorIs(t, err, ErrUnsupportedSource)

	_, err = Router{}.Open(context.Background(), "s3://b/k")
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}
