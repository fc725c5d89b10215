package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalUploader stores files under dir and serves them from publicPath.
type LocalUploader struct {
	dir        string
	publicPath string
}

func NewLocalUploader(dir, publicPath string) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalUploader{dir: dir, publicPath: "/" + strings.Trim(publicPath, "/")}, nil
}

func (u *LocalUploader) Dir() string { return u.dir }

func (u *LocalUploader) PublicPath() string { return u.publicPath }

func (u *LocalUploader) Upload(ctx context.Context, obj *Object) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := filepath.Base(obj.Name)
	dst := filepath.Join(u.dir, name)

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, obj.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return path.Join(u.publicPath, name), nil
}

func (u *LocalUploader) Close() error { return nil }
