// Package publish uploads rendered markup to object storage or a local
// directory.
//
// Destinations are URLs: s3://bucket/key for S3-compatible storage and
// file:///abs/path (or a bare path) for the local filesystem.
//
//	dest, err := publish.ParseDestination("s3://site/fragments/header.html")
//	pub, err := publish.ForDestination(dest, s3Client)
//	loc, err := pub.Publish(ctx, publish.Object{Key: dest.Key, Body: html})
package publish

import (
	"context"
	"net/url"
	"strings"

	"github.com/vango-dev/ssr/internal/errors"
)

// DefaultContentType is used for objects without an explicit content type.
const DefaultContentType = "text/html; charset=utf-8"

// Object is a rendered document to publish.
type Object struct {
	Key         string
	Body        []byte
	ContentType string
	Metadata    map[string]string
}

// Publisher stores an Object and returns its location.
type Publisher interface {
	Publish(ctx context.Context, obj Object) (string, error)
}

// Destination is a parsed publish target.
type Destination struct {
	Scheme string // "s3" or "file"
	Bucket string // s3 only
	Key    string // object key or file path
}

// ParseDestination parses an s3:// or file:// URL. A value without a scheme
// is a file path.
func ParseDestination(raw string) (Destination, error) {
	if raw == "" {
		return Destination{}, errors.New("E042").WithDetail("empty destination")
	}
	if !strings.Contains(raw, "://") {
		return Destination{Scheme: "file", Key: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Destination{}, errors.New("E042").WithDetailf("invalid destination %q", raw).Wrap(err)
	}

	switch u.Scheme {
	case "s3":
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Destination{}, errors.New("E042").
				WithDetailf("destination %q needs a bucket and a key", raw).
				WithSuggestion("Use s3://bucket/path/to/object.html")
		}
		return Destination{Scheme: "s3", Bucket: u.Host, Key: key}, nil
	case "file":
		if u.Path == "" {
			return Destination{}, errors.New("E042").WithDetailf("destination %q has no path", raw)
		}
		return Destination{Scheme: "file", Key: u.Path}, nil
	default:
		return Destination{}, errors.New("E042").WithDetailf("unsupported scheme %q", u.Scheme)
	}
}

// ForDestination returns a Publisher for dest. client is required for s3
// destinations.
func ForDestination(dest Destination, client ObjectPutter) (Publisher, error) {
	switch dest.Scheme {
	case "s3":
		if client == nil {
			return nil, errors.New("E042").WithDetail("no S3 client configured")
		}
		return NewS3Publisher(client, dest.Bucket), nil
	default:
		return NewDirPublisher(""), nil
	}
}
