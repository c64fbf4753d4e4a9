package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding support; output is always JPEG
	"math"
	"time"

	"github.com/kiranastores/attendance-backend-go/internal/pkg/storage"
	"golang.org/x/image/draw"
)

// Service stores attendance photos. Photos arrive as raw bytes from
// the mobile client, get compressed into the 50KB-150KB band and are
// always persisted as JPEG.
type Service interface {
	// UploadAttendancePhoto stores a check-in or check-out photo and
	// returns the public URL. phase is "checkin" or "checkout".
	UploadAttendancePhoto(ctx context.Context, employeeID string, date string, photo []byte, phase string) (string, error)

	// DeletePhoto removes a previously stored photo by path.
	DeletePhoto(ctx context.Context, path string) error
}

type serviceImpl struct {
	storage storage.FileStorage
}

func NewService(storage storage.FileStorage) Service {
	return &serviceImpl{storage: storage}
}

func (s *serviceImpl) UploadAttendancePhoto(ctx context.Context, employeeID string, date string, photo []byte, phase string) (string, error) {
	if len(photo) == 0 {
		return "", fmt.Errorf("empty photo payload")
	}

	compressed, err := compressImage(photo, 150*1024, 50*1024)
	if err != nil {
		return "", fmt.Errorf("failed to compress photo: %w", err)
	}

	// attendance/{date}/{employeeID}-{phase}-{timestamp}.jpg
	filename := fmt.Sprintf("%s-%s-%d.jpg", employeeID, phase, time.Now().UnixNano())
	path := fmt.Sprintf("attendance/%s/%s", date, filename)

	storedPath, err := s.storage.Upload(ctx, bytes.NewReader(compressed), path, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload attendance photo: %w", err)
	}

	return s.storage.GetURL(ctx, storedPath)
}

func (s *serviceImpl) DeletePhoto(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// compressImage re-encodes an image into the [minSize, maxSize] band.
// Quality is lowered first; if the image is still too large it gets
// downscaled and re-encoded.
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	if len(buffer) <= maxSize && len(buffer) >= minSize {
		return buffer, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	quality := 85
	var compressed []byte

	for quality >= 50 {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}

		compressed = buf.Bytes()

		if len(compressed) <= maxSize && len(compressed) >= minSize {
			return compressed, nil
		}

		if len(compressed) > maxSize {
			quality -= 5
			continue
		}

		// Too small but quality already low enough, accept it.
		return compressed, nil
	}

	if len(compressed) > maxSize {
		// Aim for the middle of the band when downscaling.
		targetSize := (maxSize + minSize) / 2
		ratio := math.Sqrt(float64(targetSize) / float64(len(compressed)))
		newWidth := int(float64(originalWidth) * ratio)
		newHeight := int(float64(originalHeight) * ratio)

		if newWidth < 600 {
			newWidth = 600
		}
		if newHeight < 400 {
			newHeight = 400
		}

		resized := resizeImage(img, newWidth, newHeight)

		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 70}); err != nil {
			return nil, fmt.Errorf("failed to encode resized image: %w", err)
		}
		compressed = buf.Bytes()
	}

	return compressed, nil
}

func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
