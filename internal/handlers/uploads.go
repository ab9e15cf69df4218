package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/nikidav23/rizy-land-mini-a/internal/cache"
	"github.com/nikidav23/rizy-land-mini-a/internal/imaging"
	"github.com/nikidav23/rizy-land-mini-a/internal/models"
	"github.com/nikidav23/rizy-land-mini-a/internal/storage"
	"github.com/nikidav23/rizy-land-mini-a/internal/store"
)

// DefaultMaxUploadBytes is the largest accepted image (5 MB).
const DefaultMaxUploadBytes = 5 << 20

// multipartOverhead leaves room for boundaries and part headers on top of
// the file itself.
const multipartOverhead = 64 << 10

// UploadConfig configures the upload pipeline.
type UploadConfig struct {
	TempDir  string // scratch space for raw and converted files
	MaxBytes int64  // largest accepted file
}

// Uploads accepts cover and product images, converts them and points the
// owning entity at the published file.
type Uploads struct {
	books      *store.BookStore
	audioBooks *store.AudioBookStore
	products   *store.ProductStore
	converter  imaging.Converter
	bucket     storage.Bucket
	cache      *cache.ResponseCache
	tempDir    string
	maxBytes   int64
}

// NewUploads creates the upload handler group. rc may be nil.
func NewUploads(books *store.BookStore, audioBooks *store.AudioBookStore, products *store.ProductStore, converter imaging.Converter, bucket storage.Bucket, rc *cache.ResponseCache, cfg UploadConfig) *Uploads {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxUploadBytes
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	return &Uploads{
		books:      books,
		audioBooks: audioBooks,
		products:   products,
		converter:  converter,
		bucket:     bucket,
		cache:      rc,
		tempDir:    cfg.TempDir,
		maxBytes:   cfg.MaxBytes,
	}
}

// uploadTarget describes one kind of upload: which form field carries the
// file, how it is converted, and which entity field receives the URL.
type uploadTarget struct {
	param     string // URL parameter holding the entity id
	field     string // multipart field name
	keyFormat string // object key without extension, %d is the id
	preset    imaging.Preset
	family    string // cache family to invalidate
	notFound  string
	okMessage string
	failure   string
	urlField  string // response field echoing the new URL
	exists    func(id int) bool
	apply     func(id int, url string) error
}

// BookCover handles POST /api/upload/book-cover/{bookId} (field "cover").
func (u *Uploads) BookCover(w http.ResponseWriter, r *http.Request) {
	u.handle(w, r, uploadTarget{
		param:     "bookId",
		field:     "cover",
		keyFormat: "book-%d-cover",
		preset:    imaging.CoverPreset,
		family:    cache.FamilyBooks,
		notFound:  "Book not found",
		okMessage: "Cover uploaded successfully",
		failure:   "Failed to upload cover",
		urlField:  "coverImage",
		exists: func(id int) bool {
			_, err := u.books.FindByID(id)
			return err == nil
		},
		apply: func(id int, url string) error {
			_, err := u.books.Update(id, models.BookPatch{CoverImage: &url})
			return err
		},
	})
}

// AudioBookCover handles POST /api/upload/audiobook-cover/{audioBookId}
// (field "cover").
func (u *Uploads) AudioBookCover(w http.ResponseWriter, r *http.Request) {
	u.handle(w, r, uploadTarget{
		param:     "audioBookId",
		field:     "cover",
		keyFormat: "audiobook-%d-cover",
		preset:    imaging.CoverPreset,
		family:    cache.FamilyAudioBooks,
		notFound:  "Audio book not found",
		okMessage: "Cover uploaded successfully",
		failure:   "Failed to upload cover",
		urlField:  "coverImage",
		exists: func(id int) bool {
			_, err := u.audioBooks.FindByID(id)
			return err == nil
		},
		apply: func(id int, url string) error {
			_, err := u.audioBooks.Update(id, models.AudioBookPatch{CoverImage: &url})
			return err
		},
	})
}

// ProductImage handles POST /api/upload/product-image/{productId} (field
// "image").
func (u *Uploads) ProductImage(w http.ResponseWriter, r *http.Request) {
	u.handle(w, r, uploadTarget{
		param:     "productId",
		field:     "image",
		keyFormat: "product-%d-image",
		preset:    imaging.ProductPreset,
		family:    cache.FamilyShop,
		notFound:  "Product not found",
		okMessage: "Image uploaded successfully",
		failure:   "Failed to upload image",
		urlField:  "imageUrl",
		exists: func(id int) bool {
			_, err := u.products.FindByID(id)
			return err == nil
		},
		apply: func(id int, url string) error {
			_, err := u.products.Update(id, models.ShopProductPatch{ImageURL: &url})
			return err
		},
	})
}

func (u *Uploads) handle(w http.ResponseWriter, r *http.Request, t uploadTarget) {
	tooLarge := fmt.Sprintf("File too large. Maximum size is %d MB.", u.maxBytes>>20)

	r.Body = http.MaxBytesReader(w, r.Body, u.maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(u.maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeMessage(w, http.StatusRequestEntityTooLarge, tooLarge)
			return
		}
		writeMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(t.field)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Size > u.maxBytes {
		writeMessage(w, http.StatusRequestEntityTooLarge, tooLarge)
		return
	}

	contentType, err := sniffContentType(file)
	if err != nil {
		writeServerError(w, r, t.failure, err)
		return
	}
	if !strings.HasPrefix(contentType, "image/") {
		writeMessage(w, http.StatusBadRequest, "Only image files are allowed")
		return
	}

	id, ok := pathID(r, t.param)
	if !ok || !t.exists(id) {
		writeMessage(w, http.StatusNotFound, t.notFound)
		return
	}

	url, err := u.publish(r.Context(), file, fmt.Sprintf(t.keyFormat, id), t.preset)
	if err != nil {
		writeServerError(w, r, t.failure, err)
		return
	}

	if err := t.apply(id, url); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, t.notFound)
			return
		}
		writeServerError(w, r, t.failure, err)
		return
	}
	u.cache.Invalidate(r.Context(), t.family)

	slog.Info("image uploaded", "key", fmt.Sprintf(t.keyFormat, id), "url", url, "size", header.Size)
	writeJSON(w, http.StatusOK, map[string]string{
		"message":  t.okMessage,
		"path":     url,
		t.urlField: url,
	})
}

// sniffContentType detects the MIME type from the first 512 bytes and
// rewinds the file.
func sniffContentType(f multipart.File) (string, error) {
	buf := make([]byte, 512)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}
	return http.DetectContentType(buf[:n]), nil
}

// publish copies the upload to a temp file, converts it and stores the
// result under key plus the converter's extension. Both temp files are
// removed before it returns.
func (u *Uploads) publish(ctx context.Context, src io.Reader, key string, preset imaging.Preset) (string, error) {
	base := filepath.Join(u.tempDir, "upload-"+uuid.NewString())
	rawPath := base + ".src"
	outPath := base + u.converter.Extension()
	defer os.Remove(rawPath)
	defer os.Remove(outPath)

	raw, err := os.Create(rawPath)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(raw, src); err != nil {
		raw.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := raw.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	if err := u.converter.Convert(ctx, rawPath, outPath, preset); err != nil {
		return "", fmt.Errorf("convert %s: %w", key, err)
	}

	out, err := os.Open(outPath)
	if err != nil {
		return "", fmt.Errorf("open converted image: %w", err)
	}
	defer out.Close()

	info, err := out.Stat()
	if err != nil {
		return "", fmt.Errorf("stat converted image: %w", err)
	}

	url, err := u.bucket.Put(ctx, key+u.converter.Extension(), u.converter.ContentType(), out, info.Size())
	if err != nil {
		return "", fmt.Errorf("publish %s: %w", key, err)
	}
	return url, nil
}
