package publish

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	vangoerrors "github.com/vango-dev/ssr/internal/errors"
)

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestParseDestination(t *testing.T) {
	tests := []struct {
		raw     string
		want    Destination
		wantErr bool
	}{
		{raw: "s3://site/a/b.html", want: Destination{Scheme: "s3", Bucket: "site", Key: "a/b.html"}},
		{raw: "file:///tmp/out.html", want: Destination{Scheme: "file", Key: "/tmp/out.html"}},
		{raw: "out/page.html", want: Destination{Scheme: "file", Key: "out/page.html"}},
		{raw: "s3://site", wantErr: true},
		{raw: "s3:///key", wantErr: true},
		{raw: "gs://bucket/key", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseDestination(tt.raw)
			if tt.wantErr {
				if vangoerrors.CodeOf(err) != "E042" {
					t.Errorf("err = %v, want E042", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestS3Publish(t *testing.T) {
	client := &fakePutter{}
	pub := NewS3Publisher(client, "site").WithPrefix("fragments/")
	pub.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	loc, err := pub.Publish(context.Background(), Object{
		Key:      "header.html",
		Body:     []byte("<x-header></x-header>"),
		Metadata: map[string]string{"tag": "x-header"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if loc != "s3://site/fragments/header.html" {
		t.Errorf("location = %q", loc)
	}

	if len(client.inputs) != 1 {
		t.Fatalf("PutObject calls = %d", len(client.inputs))
	}
	in := client.inputs[0]
	if aws.ToString(in.Bucket) != "site" || aws.ToString(in.Key) != "fragments/header.html" {
		t.Errorf("bucket/key = %s/%s", aws.ToString(in.Bucket), aws.ToString(in.Key))
	}
	if aws.ToString(in.ContentType) != DefaultContentType {
		t.Errorf("content type = %q", aws.ToString(in.ContentType))
	}
	if aws.ToInt64(in.ContentLength) != int64(len("<x-header></x-header>")) {
		t.Errorf("content length = %d", aws.ToInt64(in.ContentLength))
	}
	if in.Metadata["tag"] != "x-header" || in.Metadata["rendered-at"] != "2024-01-02T03:04:05Z" {
		t.Errorf("metadata = %v", in.Metadata)
	}
	if string(client.bodies[0]) != "<x-header></x-header>" {
		t.Errorf("body = %q", client.bodies[0])
	}
}

func TestS3PublishError(t *testing.T) {
	boom := errors.New("access denied")
	pub := NewS3Publisher(&fakePutter{err: boom}, "site")

	_, err := pub.Publish(context.Background(), Object{Key: "a.html"})
	if vangoerrors.CodeOf(err) != "E042" || !errors.Is(err, boom) {
		t.Errorf("err = %v, want E042 wrapping the client error", err)
	}

	_, err = pub.Publish(context.Background(), Object{})
	if vangoerrors.CodeOf(err) != "E042" {
		t.Errorf("empty key: err = %v", err)
	}
}

func TestDirPublish(t *testing.T) {
	root := t.TempDir()
	pub := NewDirPublisher(root)

	loc, err := pub.Publish(context.Background(), Object{Key: "nested/page.html", Body: []byte("<p>x</p>")})
	if err != nil {
		t.Fatal(err)
	}
	if loc != filepath.Join(root, "nested", "page.html") {
		t.Errorf("location = %q", loc)
	}
	data, err := os.ReadFile(loc)
	if err != nil || string(data) != "<p>x</p>" {
		t.Errorf("file = %q, %v", data, err)
	}

	escaped, err := pub.Publish(context.Background(), Object{Key: "../../outside.html", Body: []byte("x")})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(escaped) != root {
		t.Errorf("key escaped the root: %s", escaped)
	}
}

func TestForDestination(t *testing.T) {
	if _, err := ForDestination(Destination{Scheme: "s3", Bucket: "b", Key: "k"}, nil); vangoerrors.CodeOf(err) != "E042" {
		t.Errorf("s3 without client: err = %v", err)
	}

	pub, err := ForDestination(Destination{Scheme: "s3", Bucket: "b", Key: "k"}, &fakePutter{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := pub.(*S3Publisher); !ok {
		t.Errorf("got %T, want *S3Publisher", pub)
	}

	pub, _ = ForDestination(Destination{Scheme: "file", Key: "x.html"}, nil)
	if _, ok := pub.(*DirPublisher); !ok {
		t.Errorf("got %T, want *DirPublisher", pub)
	}
}
