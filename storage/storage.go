// Package storage relays uploaded images to local disk or to an object store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrNoFile          = errors.New("no file uploaded")
)

// Object is a validated upload ready to be written.
type Object struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
	closer      io.Closer
}

func (o *Object) Close() error {
	if o.closer == nil {
		return nil
	}
	return o.closer.Close()
}

// Uploader writes an object and returns the URL it can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, obj *Object) (string, error)
	Close() error
}

// canonical extension per accepted image type
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var jpegExts = map[string]bool{".jpg": true, ".jpeg": true}

// ImageValidator checks size and sniffed content type before anything is written.
type ImageValidator struct {
	maxSize int64
	now     func() time.Time
}

func NewImageValidator(maxSize int64) *ImageValidator {
	return &ImageValidator{maxSize: maxSize, now: time.Now}
}

func (v *ImageValidator) MaxSize() int64 { return v.maxSize }

// Open validates fh and returns it as an Object with a fresh name.
// The caller owns the returned Object and must Close it.
func (v *ImageValidator) Open(fh *multipart.FileHeader) (*Object, error) {
	if fh == nil {
		return nil, ErrNoFile
	}
	if fh.Size > v.maxSize {
		return nil, ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("detect content type: %w", err)
	}
	contentType := strings.ToLower(strings.SplitN(mt.String(), ";", 2)[0])
	ext, ok := imageTypes[contentType]
	if !ok {
		_ = f.Close()
		return nil, ErrUnsupportedType
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	if orig := strings.ToLower(filepath.Ext(fh.Filename)); contentType == "image/jpeg" && jpegExts[orig] {
		ext = orig
	}

	return &Object{
		Name:        ObjectName(ext, v.now()),
		ContentType: contentType,
		Size:        fh.Size,
		Body:        f,
		closer:      f,
	}, nil
}

// ObjectName builds project-<unix>-<random><ext>.
func ObjectName(ext string, now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	return fmt.Sprintf("project-%d-%s%s", now.Unix(), random, ext)
}
