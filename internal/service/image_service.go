package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"gatormarket/internal/config"
	"gatormarket/internal/middleware"
	"gatormarket/internal/models"
	"gatormarket/internal/repository"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
)

const (
	DefaultImageUploadDir       = "/tmp/gatormarket/uploads/images"
	DefaultImageMaxUploadSizeMB = 10
	PreviewMaxSize              = 640
	MaxImageSide                = 10000
	MaxImagePixels              = 40_000_000
	WebPQuality                 = 70

	// ImageURLPrefix is the public path under which stored images are served.
	ImageURLPrefix = "/api/products/images/"
	previewSuffix  = ".preview.webp"
)

// allowedImageTypes maps accepted extensions to the sniffed type they must carry.
var allowedImageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	storedFilename      = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)
)

// ImageStore persists uploaded image bytes.
type ImageStore interface {
	Save(ctx context.Context, filename string, content []byte) (string, error)
	Path(filename string) (string, error)
	Remove(filename string) error
}

// DiskImageStore keeps images as flat files under one directory.
type DiskImageStore struct {
	dir string
}

// NewDiskImageStore returns a store rooted at dir.
func NewDiskImageStore(dir string) *DiskImageStore {
	return &DiskImageStore{dir: dir}
}

// Save writes content to filename and returns its public URL.
func (s *DiskImageStore) Save(_ context.Context, filename string, content []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.dir, filename), content, 0o600); err != nil {
		return "", err
	}
	return ImageURLPrefix + filename, nil
}

// Path returns the on-disk location of filename, or os.ErrNotExist.
func (s *DiskImageStore) Path(filename string) (string, error) {
	full := filepath.Join(s.dir, filename)
	if _, err := os.Stat(full); err != nil {
		return "", err
	}
	return full, nil
}

func (s *DiskImageStore) Remove(filename string) error {
	err := os.Remove(filepath.Join(s.dir, filename))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// UploadImageInput is one uploaded file.
type UploadImageInput struct {
	UserID   uint
	Filename string
	Content  []byte
}

// StoredImage describes a saved upload.
type StoredImage struct {
	Filename   string `json:"filename"`
	URL        string `json:"url"`
	PreviewURL string `json:"preview_url,omitempty"`
}

// ServedImage is what the image endpoint should write.
type ServedImage struct {
	Path        string
	Placeholder bool
}

// ImageService validates, stores and serves listing images.
type ImageService struct {
	store              ImageStore
	products           repository.ProductRepository
	maxUploadSizeBytes int64
}

// NewImageService returns a new ImageService.
func NewImageService(store ImageStore, products repository.ProductRepository, cfg *config.Config) *ImageService {
	maxUploadSizeMB := DefaultImageMaxUploadSizeMB
	if cfg != nil && cfg.ImageMaxUploadSizeMB > 0 {
		maxUploadSizeMB = cfg.ImageMaxUploadSizeMB
	}
	return &ImageService{
		store:              store,
		products:           products,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// Validate checks the extension whitelist and that the sniffed content type
// matches it.
func (s *ImageService) Validate(in UploadImageInput) error {
	if in.Filename == "" || len(in.Content) == 0 {
		return models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	wantType, ok := allowedImageTypes[ext]
	if !ok {
		return models.NewValidationError(fmt.Sprintf("Invalid file type for %s. Allowed types: png, jpg, jpeg", in.Filename))
	}
	if http.DetectContentType(in.Content) != wantType {
		return models.NewValidationError(fmt.Sprintf("Invalid image content or potentially unsafe file: %s", in.Filename))
	}
	dims, _, err := image.DecodeConfig(bytes.NewReader(in.Content))
	if err != nil {
		return models.NewValidationError(fmt.Sprintf("Invalid image content or potentially unsafe file: %s", in.Filename))
	}
	// Checked before anything decodes pixel data.
	if dims.Width > MaxImageSide || dims.Height > MaxImageSide || dims.Width*dims.Height > MaxImagePixels {
		return models.NewValidationError(fmt.Sprintf("Image dimensions too large for %s (max %dx%d)", in.Filename, MaxImageSide, MaxImageSide))
	}
	return nil
}

// Store validates in and saves it along with a WebP preview.
func (s *ImageService) Store(ctx context.Context, in UploadImageInput) (*StoredImage, error) {
	if err := s.Validate(in); err != nil {
		return nil, err
	}

	name := uuid.NewString() + "_" + sanitizeFilename(in.Filename)
	url, err := s.store.Save(ctx, name, in.Content)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	stored := &StoredImage{Filename: name, URL: url}

	preview, err := buildPreview(in.Content)
	if err == nil {
		stored.PreviewURL, err = s.store.Save(ctx, name+previewSuffix, preview)
	}
	if err != nil {
		middleware.Logger.WarnContext(ctx, "image preview skipped",
			slog.String("filename", name),
			slog.String("error", err.Error()),
		)
	}
	return stored, nil
}

// Discard removes a stored image and its preview.
func (s *ImageService) Discard(url string) {
	name := strings.TrimPrefix(url, ImageURLPrefix)
	if !storedFilename.MatchString(name) {
		return
	}
	_ = s.store.Remove(name)
	_ = s.store.Remove(name + previewSuffix)
}

// Resolve decides what to serve for filename: the file for approved
// listings, a placeholder while pending, and not found otherwise.
func (s *ImageService) Resolve(ctx context.Context, filename string) (*ServedImage, error) {
	if !storedFilename.MatchString(filename) || strings.Contains(filename, "..") {
		return nil, models.NewNotFoundMessage("Image not found")
	}

	original := strings.TrimSuffix(filename, previewSuffix)
	status, err := s.products.ApprovalForImage(ctx, ImageURLPrefix+original)
	if err != nil {
		return nil, err
	}

	switch status {
	case models.ApprovalApproved:
		path, err := s.store.Path(filename)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, models.NewNotFoundMessage("Image not found")
			}
			return nil, models.NewInternalError(err)
		}
		return &ServedImage{Path: path}, nil
	case models.ApprovalPending:
		return &ServedImage{Placeholder: true}, nil
	default:
		return nil, models.NewNotFoundMessage("Image not found")
	}
}

func sanitizeFilename(name string) string {
	name = unsafeFilenameChars.ReplaceAllString(filepath.Base(name), "_")
	if name == "" || name == "." {
		return "file"
	}
	return name
}

func buildPreview(content []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := webp.Encode(&buf, resizeToFit(src, PreviewMaxSize, PreviewMaxSize), &webp.Options{Quality: WebPQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 || (w <= maxWidth && h <= maxHeight) {
		return src
	}

	scale := float64(maxWidth) / float64(w)
	if hs := float64(maxHeight) / float64(h); hs < scale {
		scale = hs
	}
	newW := max(int(float64(w)*scale), 1)
	newH := max(int(float64(h)*scale), 1)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

var (
	placeholderOnce  sync.Once
	placeholderBytes []byte
)

// PlaceholderPNG is served in place of images whose listing awaits approval.
func PlaceholderPNG() []byte {
	placeholderOnce.Do(func() {
		img := image.NewRGBA(image.Rect(0, 0, 400, 300))
		fill := color.RGBA{R: 0xE5, G: 0xE1, B: 0xEE, A: 0xFF}
		stripe := color.RGBA{R: 0x46, G: 0x30, B: 0x77, A: 0xFF}
		for y := 0; y < 300; y++ {
			for x := 0; x < 400; x++ {
				if y >= 140 && y < 160 {
					img.Set(x, y, stripe)
				} else {
					img.Set(x, y, fill)
				}
			}
		}
		var buf bytes.Buffer
		_ = png.Encode(&buf, img)
		placeholderBytes = buf.Bytes()
	})
	return placeholderBytes
}
