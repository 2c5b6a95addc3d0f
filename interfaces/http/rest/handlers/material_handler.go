package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"studymesh-backend/application/services"
	"studymesh-backend/pkg/common"
	"studymesh-backend/pkg/utils"
)

// maxTextBodyBytes caps pasted-text payloads. Matches the upload cap so
// the two ingestion paths behave the same.
const maxTextBodyBytes = 10 << 20

// MaterialHandler handles material CRUD and flashcard listing.
type MaterialHandler struct {
	materials *services.MaterialService
	logger    *zap.Logger
}

// NewMaterialHandler creates a material handler.
func NewMaterialHandler(materials *services.MaterialService, logger *zap.Logger) *MaterialHandler {
	return &MaterialHandler{materials: materials, logger: logger}
}

// CreateMaterialRequest is the body for creating a material from text.
type CreateMaterialRequest struct {
	Text  string `json:"text" validate:"required"`
	Title string `json:"title,omitempty" validate:"omitempty,max=200"`
}

// CreateMaterial handles POST /api/materials.
func (h *MaterialHandler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var req CreateMaterialRequest
	if err := common.ParseJSONBody(w, r, &req, maxTextBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.materials.CreateFromText(r.Context(), req.Text, req.Title)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	h.logger.Info("material created",
		zap.String("materialID", m.ID),
		zap.Int("keywords", len(m.Keywords)),
	)
	common.RespondJSON(w, http.StatusCreated, m)
}

// ListMaterials handles GET /api/materials.
func (h *MaterialHandler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := h.materials.List(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondList(w, http.StatusOK, materials, len(materials))
}

// GetMaterial handles GET /api/materials/{materialID}.
func (h *MaterialHandler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	m, err := h.materials.Get(r.Context(), chi.URLParam(r, "materialID"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, m)
}

// DeleteMaterial handles DELETE /api/materials/{materialID}.
func (h *MaterialHandler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "materialID")
	if err := h.materials.Delete(r.Context(), id); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondMessage(w, http.StatusOK, "material deleted")
}

// ListFlashcards handles GET /api/flashcards.
func (h *MaterialHandler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.materials.ListFlashcards(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondList(w, http.StatusOK, cards, len(cards))
}
