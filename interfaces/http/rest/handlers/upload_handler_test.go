package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"studymesh-backend/application/services"
	"studymesh-backend/domain/material"
	"studymesh-backend/infrastructure/persistence/memory"
)

type recordingBlobStore struct {
	uploads int
	lastURL string
}

func (s *recordingBlobStore) Upload(ctx context.Context, name, mimeType string, data []byte) (string, error) {
	s.uploads++
	s.lastURL = "https://storage.example.com/materials/" + name
	return s.lastURL, nil
}

type passthroughExtractor struct{}

func (passthroughExtractor) Extract(ctx context.Context, filename, mimeType string, data []byte) (string, error) {
	if mimeType == "text/plain" || mimeType == "text/markdown" {
		return string(data), nil
	}
	return "", nil
}

func newUploadFixture(t *testing.T) (*UploadHandler, *recordingBlobStore) {
	t.Helper()

	logger := zap.NewNop()
	blobs := &recordingBlobStore{}
	svc := services.NewMaterialService(
		material.NewProcessor(material.NewTemplateGenerator()),
		memory.NewMaterialRepository(),
		memory.NewFlashcardRepository(),
		services.NewGraphService(logger),
		nil,
		nil,
		logger,
	)
	return NewUploadHandler(blobs, passthroughExtractor{}, svc, logger), blobs
}

func multipartUpload(t *testing.T, filename, mimeType string, content []byte, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadTextFile(t *testing.T) {
	handler, blobs := newUploadFixture(t)

	req := multipartUpload(t, "notes.txt", "text/plain",
		[]byte("Photosynthesis converts light energy into chemical energy for plants."),
		map[string]string{"title": "Biology Notes"},
	)
	rec := httptest.NewRecorder()
	handler.Upload(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, blobs.uploads)

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.File.ID)
	assert.Equal(t, "notes.txt", resp.File.Name)
	assert.Equal(t, blobs.lastURL, resp.File.URL)
	assert.Equal(t, "text/plain", resp.File.MimeType)
	assert.NotEmpty(t, resp.Keywords)
	assert.NotEmpty(t, resp.Topics)
}

func TestUploadRejectsUnsupportedTypeBeforeStorage(t *testing.T) {
	handler, blobs := newUploadFixture(t)

	req := multipartUpload(t, "archive.zip", "application/zip", []byte("PK\x03\x04"), nil)
	rec := httptest.NewRecorder()
	handler.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, blobs.uploads, "rejected upload must never reach storage")
	assert.Contains(t, rec.Body.String(), "not supported")
}

func TestUploadRequiresFile(t *testing.T) {
	handler, blobs := newUploadFixture(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("title", "No File"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.Upload(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, blobs.uploads)
}

func TestUploadUsesClientExtractedText(t *testing.T) {
	handler, _ := newUploadFixture(t)

	req := multipartUpload(t, "diagram.png", "image/png", []byte{0x89, 'P', 'N', 'G'},
		map[string]string{"extractText": "Cell membranes regulate transport through selective permeability channels."},
	)
	rec := httptest.NewRecorder()
	handler.Upload(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Keywords, "client-extracted text should feed the keyword pipeline")
}

func TestUploadAcceptsJpgAlias(t *testing.T) {
	handler, blobs := newUploadFixture(t)

	req := multipartUpload(t, "scan.jpg", "image/jpg", []byte{0xFF, 0xD8, 0xFF}, nil)
	rec := httptest.NewRecorder()
	handler.Upload(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, blobs.uploads)
}

func TestUploadWithoutExtractableText(t *testing.T) {
	handler, blobs := newUploadFixture(t)

	req := multipartUpload(t, "photo.jpg", "image/jpeg", []byte{0xFF, 0xD8, 0xFF}, nil)
	rec := httptest.NewRecorder()
	handler.Upload(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, blobs.uploads)

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Keywords)
}
