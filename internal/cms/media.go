package cms

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/banana-labs/promptsync/internal/model"
)

const (
	defaultUploadFilename    = "image.jpg"
	defaultUploadContentType = "image/jpeg"
)

type mediaUploadResponse struct {
	Doc model.Media `json:"doc"`
}

// FilenameFromURL infers an upload filename from the last path segment of
// an image URL, with any query string stripped. An empty segment falls
// back to a generic name.
func FilenameFromURL(imageURL string) string {
	segment := imageURL
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}
	if i := strings.Index(segment, "?"); i >= 0 {
		segment = segment[:i]
	}
	if segment == "" {
		return defaultUploadFilename
	}
	return segment
}

// UploadImage downloads the image at imageURL and re-uploads the bytes to
// the store's media collection as a multipart file, returning the created
// media record. Both the download and the upload fail on a non-2xx status;
// the caller decides whether a single image's failure is recoverable.
func (c *Client) UploadImage(ctx context.Context, imageURL string) (*model.Media, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating download request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch image: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading image body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultUploadContentType
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := createFilePart(form, FilenameFromURL(imageURL), contentType)
	if err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}

	upload, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Host+"/api/media", &body)
	if err != nil {
		return nil, fmt.Errorf("creating upload request: %w", err)
	}
	c.authorize(upload)
	upload.Header.Set("Content-Type", form.FormDataContentType())

	uploadResp, err := c.HTTPClient.Do(upload)
	if err != nil {
		return nil, fmt.Errorf("uploading image: %w", err)
	}
	defer uploadResp.Body.Close()

	if uploadResp.StatusCode < 200 || uploadResp.StatusCode > 299 {
		detail, _ := io.ReadAll(uploadResp.Body)
		return nil, fmt.Errorf("failed to upload image: %s - %s", uploadResp.Status, string(detail))
	}

	var out mediaUploadResponse
	if err := decodeJSON(uploadResp.Body, &out); err != nil {
		return nil, fmt.Errorf("decoding upload response: %w", err)
	}
	return &out.Doc, nil
}

// createFilePart adds the file part with the downloaded content type, not
// the generic octet-stream CreateFormFile would set.
func createFilePart(form *multipart.Writer, filename, contentType string) (io.Writer, error) {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	return form.CreatePart(header)
}
