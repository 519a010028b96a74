package publish

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vango-dev/ssr/internal/errors"
)

// DirPublisher writes objects as files under a root directory. An empty root
// treats keys as paths relative to the working directory.
type DirPublisher struct {
	root string
}

// NewDirPublisher creates a DirPublisher.
func NewDirPublisher(root string) *DirPublisher {
	return &DirPublisher{root: root}
}

// Publish writes obj.Body to root/obj.Key, creating parent directories. The
// file is written to a temporary name first and renamed into place.
func (p *DirPublisher) Publish(ctx context.Context, obj Object) (string, error) {
	if obj.Key == "" {
		return "", errors.New("E042").WithDetail("object key is empty")
	}
	if err := ctx.Err(); err != nil {
		return "", errors.New("E042").Wrap(err)
	}

	path := obj.Key
	if p.root != "" {
		path = filepath.Join(p.root, filepath.Clean("/"+obj.Key))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.New("E042").WithDetailf("create directory for %s", path).Wrap(err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, obj.Body, 0644); err != nil {
		return "", errors.New("E042").WithDetailf("write %s", path).Wrap(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", errors.New("E042").WithDetailf("write %s", path).Wrap(err)
	}
	return path, nil
}
