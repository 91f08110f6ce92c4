package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) FileService {
	t.Helper()
	local, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)
	return NewFileService(local)
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestScaledSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"smaller image unchanged", 200, 100, 200, 100},
		{"landscape", 1024, 512, 512, 256},
		{"portrait", 300, 1200, 128, 512},
		{"square", 2048, 2048, 512, 512},
		{"extreme ratio keeps one pixel", 10000, 5, 512, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := scaledSize(tt.width, tt.height, 512)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestUploadAvatar_DownscalesToJPEG(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	key, err := svc.UploadAvatar(ctx, "emp-1", bytes.NewReader(pngBytes(t, 1024, 512)), "me.PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "avatars/emp-1/emp-1-"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	rc, err := svc.OpenFile(ctx, key)
	require.NoError(t, err)
	defer rc.Close()

	img, err := jpeg.Decode(rc)
	require.NoError(t, err)
	assert.Equal(t, 512, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())

	url, err := svc.GetFileURL(ctx, key, 0)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/"+key, url)
}

func TestUploadAvatar_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.UploadAvatar(ctx, "emp-1", bytes.NewReader(pngBytes(t, 4, 4)), "me.gif")
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = svc.UploadAvatar(ctx, "emp-1", strings.NewReader("not an image"), "me.png")
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestUploadDocument_RoundTripAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	key, err := svc.UploadDocument(ctx, strings.NewReader("leave policy"), "Policy.PDF", "policy")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "documents/policy/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	rc, err := svc.OpenFile(ctx, key)
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "leave policy", string(content))

	require.NoError(t, svc.DeleteFile(ctx, key))
	_, err = svc.OpenFile(ctx, key)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
