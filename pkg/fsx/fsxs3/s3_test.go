package fsxs3

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/Abraxas-365/jobboard/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memS3 keeps objects in a map keyed by bucket/key
type memS3 struct {
	objects map[string][]byte
	types   map[string]string
}

func newMemS3() *memS3 {
	return &memS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	k := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	m.objects[k] = data
	m.types[k] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (m *memS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *memS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(m.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (m *memS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func TestS3FileSystemPrefixesKeys(t *testing.T) {
	ctx := context.Background()
	client := newMemS3()
	fs := NewS3FileSystem(client, "bucket", "/uploads/")

	p := fs.Join("logos", "c-1", "logo.png")
	require.NoError(t, fs.WriteFileStream(ctx, p, bytes.NewReader([]byte{0x89, 'P', 'N', 'G'})))

	assert.Contains(t, client.objects, "bucket/uploads/logos/c-1/logo.png")
	assert.Equal(t, "image/png", client.types["bucket/uploads/logos/c-1/logo.png"])

	exists, err := fs.Exists(ctx, p)
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := fs.ReadFile(ctx, p)
	require.NoError(t, err)
	assert.Len(t, data, 4)

	require.NoError(t, fs.DeleteFile(ctx, p))
	exists, err = fs.Exists(ctx, p)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = fs.ReadFile(ctx, p)
	assert.ErrorIs(t, err, fsx.ErrFileNotFound())
}
