package cloudinary

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUploader(t *testing.T, handler http.HandlerFunc) *Uploader {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	uploader := NewUploader("demo", "mangaZone")
	uploader.endpoint = server.URL

	return uploader
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("Sends File And Preset, Returns Secure URL", func(t *testing.T) {
		// Arrange
		var preset, filename, content string
		uploader := newTestUploader(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			preset = r.FormValue("upload_preset")

			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()

			filename = header.Filename

			buf := new(strings.Builder)
			_, err = io.Copy(buf, file)
			require.NoError(t, err)
			content = buf.String()

			w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/cover.png"}`))
		})

		// Act
		url, err := uploader.Upload(ctx, "cover.png", strings.NewReader("png-bytes"))

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "https://res.cloudinary.com/demo/cover.png", url)
		assert.Equal(t, "mangaZone", preset)
		assert.Equal(t, "cover.png", filename)
		assert.Equal(t, "png-bytes", content)
	})

	t.Run("Provider Error Message Surfaces", func(t *testing.T) {
		// Arrange
		uploader := newTestUploader(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"Upload preset not found"}}`))
		})

		// Act
		url, err := uploader.Upload(ctx, "cover.png", strings.NewReader("x"))

		// Assert
		assert.Error(t, err)
		assert.ErrorContains(t, err, "Upload preset not found")
		assert.Empty(t, url)
	})

	t.Run("UploadFile Rejects A Missing Path", func(t *testing.T) {
		uploader := NewUploader("demo", "mangaZone")

		_, err := uploader.UploadFile(ctx, "/does/not/exist.png")

		assert.Error(t, err)
	})
}
