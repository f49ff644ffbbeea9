package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/models"
	"github.com/gabriel-vasile/mimetype"
)

// MaxUploadSize bounds the images accepted for upload.
const MaxUploadSize = 10 << 20

var (
	ErrNotAnImage     = errors.New("uploaded file is not an image")
	ErrUploadTooLarge = errors.New("uploaded file is too large")
)

// UploadImage forwards an image to the API's upload endpoint and returns the
// public URL it was stored under.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (*models.UploadResponse, error) {

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	if len(data) > MaxUploadSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrUploadTooLarge, MaxUploadSize)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, ErrNotAnImage
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filepath.Base(filename)))
	header.Set("Content-Type", mtype.String())

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart part: %w", err)
	}

	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write multipart part: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var uploaded models.UploadResponse
	if err := c.send(req, &uploaded); err != nil {
		return nil, err
	}

	if err := c.validOne("upload response", uploaded); err != nil {
		return nil, err
	}

	return &uploaded, nil
}
