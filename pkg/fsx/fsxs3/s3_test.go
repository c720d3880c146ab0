package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/Abraxas-365/nerdyjobs/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeClient struct {
	puts    []*s3.PutObjectInput
	deletes []string
	objects map[string][]byte
}

func newFakeClient() *fakeClient {
	return &fakeClient{objects: make(map[string][]byte)}
}

func (c *fakeClient) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	c.puts = append(c.puts, in)
	c.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (c *fakeClient) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := c.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (c *fakeClient) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	c.deletes = append(c.deletes, aws.ToString(in.Key))
	delete(c.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

// 1x1 transparent PNG
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89,
}

func TestWriteURLDeleteRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	fs := NewS3FileSystem(client, "logos-bucket", "uploads")

	name := fs.Join("company_logos", "acme-abc.png")
	if err := fs.WriteFile(ctx, name, pngPixel); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if len(client.puts) != 1 {
		t.Fatalf("puts = %d", len(client.puts))
	}
	put := client.puts[0]
	if aws.ToString(put.Key) != "uploads/company_logos/acme-abc.png" {
		t.Fatalf("key = %s", aws.ToString(put.Key))
	}
	if aws.ToString(put.ContentType) != "image/png" {
		t.Fatalf("content type = %s", aws.ToString(put.ContentType))
	}

	url := fs.URL(name)
	if url != "https://logos-bucket.s3.amazonaws.com/uploads/company_logos/acme-abc.png" {
		t.Fatalf("url = %s", url)
	}

	if err := fs.DeleteFile(ctx, url); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if len(client.deletes) != 1 || client.deletes[0] != "uploads/company_logos/acme-abc.png" {
		t.Fatalf("deletes = %v", client.deletes)
	}
}

func TestPublicURLOption(t *testing.T) {
	fs := NewS3FileSystem(newFakeClient(), "b", "", WithPublicURL("https://cdn.example.com/"))
	if got := fs.URL("company_logos/x.png"); got != "https://cdn.example.com/company_logos/x.png" {
		t.Fatalf("url = %s", got)
	}
}

func TestReadMissingFile(t *testing.T) {
	fs := NewS3FileSystem(newFakeClient(), "b", "uploads")
	if _, err := fs.ReadFileStream(context.Background(), "nope.png"); !errors.Is(err, fsx.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}
