package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/gophdrive/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
	putErr  error
	listErr error
	deleted []string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	if _, exists := f.objects[aws.ToString(in.Key)]; exists && aws.ToString(in.IfNoneMatch) == "*" {
		return nil, &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "At least one of the pre-conditions you specified did not hold"}
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = b
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListBuckets(ctx context.Context, in *s3.ListBucketsInput, _ ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &s3.ListBucketsOutput{Buckets: []types.Bucket{{Name: aws.String("files")}, {Name: aws.String("logs")}}}, nil
}

func realPresigner() *s3.PresignClient {
	client := s3.New(s3.Options{
		Region:       "us-east-1",
		Credentials:  credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
		BaseEndpoint: aws.String("http://127.0.0.1:9000"),
		UsePathStyle: true,
	})
	return s3.NewPresignClient(client)
}

func TestS3Store_UploadDownloadDelete(t *testing.T) {
	fake := newFakeS3()
	store := newS3Store(fake, realPresigner(), "files", 0)
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "u1/1-a.txt", []byte("hello"), "text/plain"))
	assert.Equal(t, "text/plain", fake.types["u1/1-a.txt"])

	got, err := store.Download(ctx, "u1/1-a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)

	require.NoError(t, store.Delete(ctx, "u1/1-a.txt"))
	assert.Equal(t, []string{"u1/1-a.txt"}, fake.deleted)

	_, err = store.Download(ctx, "u1/1-a.txt")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestS3Store_UploadNeverOverwrites(t *testing.T) {
	fake := newFakeS3()
	store := newS3Store(fake, realPresigner(), "files", 0)
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "u1/1-a.txt", []byte("first"), "text/plain"))
	err := store.Upload(ctx, "u1/1-a.txt", []byte("second"), "text/plain")
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
	assert.Equal(t, []byte("first"), fake.objects["u1/1-a.txt"])
}

func TestIsPreconditionFailure(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&smithy.GenericAPIError{Code: "PreconditionFailed"}, true},
		{fmt.Errorf("op: %w", &smithy.GenericAPIError{Code: "ConditionalRequestConflict"}), true},
		{&smithy.GenericAPIError{Code: "AccessDenied"}, false},
		{errors.New("dial tcp: refused"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isPreconditionFailure(tt.err), tt.err.Error())
	}
}

func TestS3Store_DownloadHonoursLimit(t *testing.T) {
	fake := newFakeS3()
	fake.objects["k"] = []byte("0123456789")
	store := newS3Store(fake, realPresigner(), "files", 4)

	got, err := store.Download(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("0123"), got)
}

func TestS3Store_UploadError(t *testing.T) {
	fake := newFakeS3()
	fake.putErr = errors.New("access denied")
	store := newS3Store(fake, realPresigner(), "files", 0)

	err := store.Upload(context.Background(), "u1/x", []byte("x"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestS3Store_ListBuckets(t *testing.T) {
	fake := newFakeS3()
	store := newS3Store(fake, realPresigner(), "files", 0)

	names, err := store.ListBuckets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"files", "logs"}, names)

	fake.listErr = errors.New("network down")
	_, err = store.ListBuckets(context.Background())
	assert.Error(t, err)
}

func TestS3Store_SignedURL(t *testing.T) {
	store := newS3Store(newFakeS3(), realPresigner(), "files", 0)

	raw, err := store.SignedURL(context.Background(), "u1/1-a.txt", time.Hour)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/files/u1/1-a.txt", u.Path)
	assert.Equal(t, "3600", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestS3Store_SignedURL_PresignError(t *testing.T) {
	orig := presignGetObject
	t.Cleanup(func() { presignGetObject = orig })
	presignGetObject = func(*s3.PresignClient, context.Context, *s3.GetObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("clock skew")
	}

	store := newS3Store(newFakeS3(), realPresigner(), "files", 0)
	_, err := store.SignedURL(context.Background(), "k", time.Minute)
	assert.ErrorContains(t, err, "clock skew")
}

func TestNewS3Store_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("bad profile")
	}

	_, err := NewS3Store(context.Background(), Options{Bucket: "files"})
	assert.ErrorContains(t, err, "bad profile")
}
