package handlers

import (
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"studymesh-backend/application/ports"
	"studymesh-backend/application/services"
	"studymesh-backend/domain/analysis"
	"studymesh-backend/domain/material"
	"studymesh-backend/pkg/common"
)

// MaxUploadBytes is the hard cap on uploaded file size.
const MaxUploadBytes = 10 << 20

// allowedUploadTypes is the MIME allowlist for uploads. Anything else is
// rejected before a single byte reaches storage.
var allowedUploadTypes = map[string]bool{
	"application/pdf":    true,
	"text/plain":         true,
	"text/markdown":      true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/png":  true,
	"image/jpeg": true,
	// Non-standard alias some clients still send for JPEG uploads.
	"image/jpg": true,
}

// UploadHandler handles file uploads: validate, store the blob, extract
// text, and hand the result to the material pipeline.
type UploadHandler struct {
	blobs     ports.BlobStore
	extractor ports.TextExtractor
	materials *services.MaterialService
	logger    *zap.Logger
}

// NewUploadHandler creates an upload handler.
func NewUploadHandler(
	blobs ports.BlobStore,
	extractor ports.TextExtractor,
	materials *services.MaterialService,
	logger *zap.Logger,
) *UploadHandler {
	return &UploadHandler{
		blobs:     blobs,
		extractor: extractor,
		materials: materials,
		logger:    logger,
	}
}

// UploadResponse is the upload endpoint's response body.
type UploadResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	File     UploadedFile     `json:"file"`
	Keywords []string         `json:"keywords"`
	Topics   []analysis.Topic `json:"topics"`
}

// UploadedFile describes the stored artifact.
type UploadedFile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

// Upload handles POST /api/upload. Multipart fields: file (required),
// title, and extractText with pre-extracted text from the client. All
// validation happens before the blob store is touched.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "could not parse upload: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !allowedUploadTypes[mimeType] {
		common.RespondErrorWithDetails(w, http.StatusBadRequest,
			fmt.Sprintf("file type %q is not supported", mimeType),
			map[string]interface{}{"allowedTypes": allowedTypeList()},
		)
		return
	}
	if header.Size > MaxUploadBytes {
		common.RespondError(w, http.StatusBadRequest,
			fmt.Sprintf("file exceeds the %d MB limit", MaxUploadBytes>>20))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "could not read uploaded file")
		return
	}
	if int64(len(data)) > MaxUploadBytes {
		common.RespondError(w, http.StatusBadRequest,
			fmt.Sprintf("file exceeds the %d MB limit", MaxUploadBytes>>20))
		return
	}

	url, err := h.blobs.Upload(r.Context(), header.Filename, mimeType, data)
	if err != nil {
		h.logger.Error("blob upload failed",
			zap.String("file", header.Filename),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	extractedText := r.FormValue("extractText")
	if extractedText == "" {
		extractedText, err = h.extractor.Extract(r.Context(), header.Filename, mimeType, data)
		if err != nil {
			// Extraction failure degrades to a keyword-less material.
			h.logger.Warn("text extraction failed",
				zap.String("file", header.Filename),
				zap.Error(err),
			)
			extractedText = ""
		}
	}

	info := material.FileInfo{
		Name:     header.Filename,
		URL:      url,
		Size:     header.Size,
		MimeType: mimeType,
	}
	m, err := h.materials.CreateFromUpload(r.Context(), info, r.FormValue("title"), extractedText)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	h.logger.Info("file uploaded",
		zap.String("materialID", m.ID),
		zap.String("file", header.Filename),
		zap.Int64("size", header.Size),
	)

	writeUploadResponse(w, UploadResponse{
		Success: true,
		Message: "File uploaded successfully",
		File: UploadedFile{
			ID:       m.ID,
			Name:     m.FileName,
			URL:      m.FileURL,
			Size:     m.FileSize,
			MimeType: m.MimeType,
		},
		Keywords: m.Keywords,
		Topics:   m.Topics,
	})
}

func allowedTypeList() []string {
	types := make([]string, 0, len(allowedUploadTypes))
	for t := range allowedUploadTypes {
		types = append(types, t)
	}
	return types
}

func writeUploadResponse(w http.ResponseWriter, resp UploadResponse) {
	common.WriteRawJSON(w, http.StatusCreated, resp)
}
