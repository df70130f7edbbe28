package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	k := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[k] = b
	f.types[k] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func TestS3RecipeState(t *testing.T) {
	fake := newFakeS3()
	fake.objects["bucket/recipes.json"] = []byte(`[]`)

	b, err := NewS3RecipeState(fake, "bucket", "recipes.json").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), b)

	_, err = NewS3RecipeState(fake, "bucket", "missing.json").Load(context.Background())
	assert.ErrorContains(t, err, "failed to get recipe object from S3")
}

func TestS3ArtifactStore(t *testing.T) {
	fake := newFakeS3()
	store := NewS3ArtifactStore(fake, "bucket", "lists")

	loc, err := store.Save(context.Background(), "shopping_list.html", "text/html; charset=utf-8", []byte("<ul></ul>"))
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/lists/shopping_list.html", loc)
	assert.Equal(t, []byte("<ul></ul>"), fake.objects["bucket/lists/shopping_list.html"])
	assert.Equal(t, "text/html; charset=utf-8", fake.types["bucket/lists/shopping_list.html"])

	fake.err = errors.New("access denied")
	_, err = store.Save(context.Background(), "x.txt", "text/plain", nil)
	assert.ErrorContains(t, err, "access denied")
}
