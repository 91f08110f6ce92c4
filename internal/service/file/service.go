package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

// ErrInvalidImage is returned when an avatar cannot be decoded as jpeg or png.
var ErrInvalidImage = errors.New("file is not a supported image")

const (
	avatarMaxSide = 512
	avatarQuality = 85
)

type FileService interface {
	// UploadAvatar stores a down-scaled jpeg copy of an employee profile image
	UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	// UploadDocument stores a shared document under its category
	UploadDocument(ctx context.Context, file io.Reader, filename string, category string) (string, error)

	OpenFile(ctx context.Context, path string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadAvatar uploads employee avatar
func (s *fileServiceImpl) UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", ErrInvalidImage
	}

	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	scaled, err := downscaleImage(buffer, avatarMaxSide)
	if err != nil {
		return "", err
	}

	// Always stored as jpeg after re-encoding
	newFilename := fmt.Sprintf("%s-%s.jpg", employeeID, uuid.New().String())
	key := path.Join("avatars", employeeID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(scaled), key, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	return uploadedPath, nil
}

// UploadDocument uploads a shared document
func (s *fileServiceImpl) UploadDocument(ctx context.Context, file io.Reader, filename string, category string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	newFilename := uuid.New().String() + ext
	key := path.Join("documents", category, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, key, contentTypeFor(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}

	return uploadedPath, nil
}

func (s *fileServiceImpl) OpenFile(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.storage.Download(ctx, path)
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

// ==================== HELPER FUNCTIONS ====================

// downscaleImage decodes a jpeg or png image, shrinks it so that its longest
// side is at most maxSide and re-encodes it as jpeg. Smaller images keep their size.
func downscaleImage(buffer []byte, maxSide int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	bounds := img.Bounds()
	width, height := scaledSize(bounds.Dx(), bounds.Dy(), maxSide)
	if width != bounds.Dx() || height != bounds.Dy() {
		img = resizeImage(img, width, height)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: avatarQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// scaledSize keeps the aspect ratio and never returns a zero dimension.
func scaledSize(width, height, maxSide int) (int, int) {
	if width <= maxSide && height <= maxSide {
		return width, height
	}
	if width >= height {
		return maxSide, max(1, height*maxSide/width)
	}
	return max(1, width*maxSide/height), maxSide
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Use CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".txt":
		return "text/plain"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
