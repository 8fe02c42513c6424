package cloudinary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// Uploader pushes assets to Cloudinary's unsigned upload endpoint.
// No account credential is involved: the upload preset is the only
// authorization, as on the web client.
type Uploader struct {
	cloudName    string
	uploadPreset string
	httpClient   *http.Client
	endpoint     string
}

func NewUploader(cloudName, uploadPreset string) *Uploader {
	return &Uploader{
		cloudName:    cloudName,
		uploadPreset: uploadPreset,
		httpClient:   http.DefaultClient,
		endpoint:     fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/upload", cloudName),
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UploadFile uploads a local file and returns its hosted URL.
func (u *Uploader) UploadFile(ctx context.Context, path string) (string, error) {

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open upload file: %w", err)
	}

	defer file.Close()

	return u.Upload(ctx, filepath.Base(path), file)
}

// Upload streams one asset as multipart form data with the unsigned
// preset and returns the secure URL Cloudinary assigned.
func (u *Uploader) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {

		part, err := form.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)

			return
		}

		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)

			return
		}

		if err := form.WriteField("upload_preset", u.uploadPreset); err != nil {
			pw.CloseWithError(err)

			return
		}

		pw.CloseWithError(form.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, pr)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}

	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}

	defer resp.Body.Close()

	var payload uploadResponse

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		if payload.Error.Message != "" {
			return "", fmt.Errorf("upload failed: %s", payload.Error.Message)
		}

		return "", fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}

	if payload.SecureURL != "" {
		return payload.SecureURL, nil
	}

	return payload.URL, nil
}
