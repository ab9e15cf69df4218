package handlers

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nikidav23/rizy-land-mini-a/internal/imaging"
)

type mockConverter struct {
	mock.Mock
}

func (m *mockConverter) Convert(ctx context.Context, src, dst string, p imaging.Preset) error {
	return m.Called(ctx, src, dst, p).Error(0)
}

func (m *mockConverter) Extension() string   { return ".webp" }
func (m *mockConverter) ContentType() string { return "image/webp" }

type mockBucket struct {
	mock.Mock
}

func (m *mockBucket) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	args := m.Called(ctx, key, contentType, body, size)
	return args.String(0), args.Error(1)
}

// writeConverted stands in for a real conversion by writing the output file.
func writeConverted(args mock.Arguments) {
	_ = os.WriteFile(args.String(2), []byte("RIFFwebp"), 0o644)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, target, field string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		part, err := mw.CreateFormFile(field, "upload.bin")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no file"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

type uploadFixture struct {
	stores    *testStores
	uploads   *Uploads
	converter *mockConverter
	bucket    *mockBucket
	tempDir   string
	router    chi.Router
}

func newUploadFixture(t *testing.T, maxBytes int64) *uploadFixture {
	t.Helper()
	f := &uploadFixture{
		stores:    newTestStores(t),
		converter: &mockConverter{},
		bucket:    &mockBucket{},
		tempDir:   t.TempDir(),
	}
	f.uploads = NewUploads(f.stores.books, f.stores.audioBooks, f.stores.products,
		f.converter, f.bucket, nil, UploadConfig{TempDir: f.tempDir, MaxBytes: maxBytes})

	f.router = chi.NewRouter()
	f.router.Post("/api/upload/book-cover/{bookId}", f.uploads.BookCover)
	f.router.Post("/api/upload/audiobook-cover/{audioBookId}", f.uploads.AudioBookCover)
	f.router.Post("/api/upload/product-image/{productId}", f.uploads.ProductImage)
	return f
}

func (f *uploadFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *uploadFixture) assertTempDirEmpty(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(f.tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary upload files must be removed")
}

func TestUploadBookCover(t *testing.T) {
	f := newUploadFixture(t, 0)

	f.converter.On("Convert", mock.Anything, mock.Anything, mock.Anything, imaging.CoverPreset).
		Run(writeConverted).Return(nil).Once()
	f.bucket.On("Put", mock.Anything, "book-2-cover.webp", "image/webp", mock.Anything, int64(8)).
		Return("/media/book-2-cover.webp", nil).Once()

	rec := f.do(multipartRequest(t, "/api/upload/book-cover/2", "cover", pngBytes(t)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{
		"message": "Cover uploaded successfully",
		"path": "/media/book-2-cover.webp",
		"coverImage": "/media/book-2-cover.webp"
	}`, rec.Body.String())

	book, err := f.stores.books.FindByID(2)
	require.NoError(t, err)
	require.NotNil(t, book.CoverImage)
	assert.Equal(t, "/media/book-2-cover.webp", *book.CoverImage)

	f.converter.AssertExpectations(t)
	f.bucket.AssertExpectations(t)
	f.assertTempDirEmpty(t)
}

func TestUploadProductImage(t *testing.T) {
	f := newUploadFixture(t, 0)

	f.converter.On("Convert", mock.Anything, mock.Anything, mock.Anything, imaging.ProductPreset).
		Run(writeConverted).Return(nil).Once()
	f.bucket.On("Put", mock.Anything, "product-3-image.webp", "image/webp", mock.Anything, mock.Anything).
		Return("https://cdn.example.com/product-3-image.webp", nil).Once()

	rec := f.do(multipartRequest(t, "/api/upload/product-image/3", "image", pngBytes(t)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "https://cdn.example.com/product-3-image.webp", decode[map[string]string](t, rec)["imageUrl"])

	p, err := f.stores.products.FindByID(3)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/product-3-image.webp", p.ImageURL)
	f.assertTempDirEmpty(t)
}

func TestUploadRejections(t *testing.T) {
	tests := []struct {
		name     string
		maxBytes int64
		target   string
		field    string
		data     func(t *testing.T) []byte
		status   int
		message  string
	}{
		{
			name:    "no file",
			target:  "/api/upload/book-cover/1",
			data:    pngBytes,
			status:  http.StatusBadRequest,
			message: "No file uploaded",
		},
		{
			name:    "wrong field",
			target:  "/api/upload/book-cover/1",
			field:   "image",
			data:    pngBytes,
			status:  http.StatusBadRequest,
			message: "No file uploaded",
		},
		{
			name:    "not an image",
			target:  "/api/upload/book-cover/1",
			field:   "cover",
			data:    func(*testing.T) []byte { return []byte("%PDF-1.4 definitely not a picture") },
			status:  http.StatusBadRequest,
			message: "Only image files are allowed",
		},
		{
			name:     "file over the limit",
			maxBytes: 1 << 20,
			target:   "/api/upload/book-cover/1",
			field:    "cover",
			data:     func(*testing.T) []byte { return bytes.Repeat([]byte{0xff}, 1<<20+1) },
			status:   http.StatusRequestEntityTooLarge,
			message:  "File too large. Maximum size is 1 MB.",
		},
		{
			name:     "body far over the limit",
			maxBytes: 1 << 20,
			target:   "/api/upload/book-cover/1",
			field:    "cover",
			data:     func(*testing.T) []byte { return bytes.Repeat([]byte{0xff}, 2<<20) },
			status:   http.StatusRequestEntityTooLarge,
			message:  "File too large. Maximum size is 1 MB.",
		},
		{
			name:    "unknown book",
			target:  "/api/upload/book-cover/99",
			field:   "cover",
			data:    pngBytes,
			status:  http.StatusNotFound,
			message: "Book not found",
		},
		{
			name:    "unknown audiobook",
			target:  "/api/upload/audiobook-cover/42",
			field:   "cover",
			data:    pngBytes,
			status:  http.StatusNotFound,
			message: "Audio book not found",
		},
		{
			name:    "non-numeric product id",
			target:  "/api/upload/product-image/abc",
			field:   "image",
			data:    pngBytes,
			status:  http.StatusNotFound,
			message: "Product not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUploadFixture(t, tt.maxBytes)

			rec := f.do(multipartRequest(t, tt.target, tt.field, tt.data(t)))
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.message, decode[messageResponse](t, rec).Message)

			f.converter.AssertNotCalled(t, "Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			f.bucket.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			f.assertTempDirEmpty(t)
		})
	}
}

func TestUploadFailuresLeaveEntityUntouched(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *uploadFixture)
	}{
		{
			name: "conversion fails",
			setup: func(f *uploadFixture) {
				f.converter.On("Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(imaging.ErrConversionFailed).Once()
			},
		},
		{
			name: "publishing fails",
			setup: func(f *uploadFixture) {
				f.converter.On("Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Run(writeConverted).Return(nil).Once()
				f.bucket.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return("", errors.New("bucket unavailable")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUploadFixture(t, 0)
			tt.setup(f)

			before, err := f.stores.audioBooks.FindByID(1)
			require.NoError(t, err)

			rec := f.do(multipartRequest(t, "/api/upload/audiobook-cover/1", "cover", pngBytes(t)))
			require.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"message":"Failed to upload cover"}`, rec.Body.String())

			after, err := f.stores.audioBooks.FindByID(1)
			require.NoError(t, err)
			assert.Equal(t, before.CoverImage, after.CoverImage)

			f.converter.AssertExpectations(t)
			f.bucket.AssertExpectations(t)
			f.assertTempDirEmpty(t)
		})
	}
}
