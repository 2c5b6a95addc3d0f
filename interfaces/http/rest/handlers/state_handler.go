package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"studymesh-backend/application/ports"
	"studymesh-backend/application/services"
	"studymesh-backend/pkg/common"
)

// maxImportBytes caps import bundles. Bundles carry full material text, so
// this runs larger than the per-file upload cap.
const maxImportBytes = 50 << 20

// StateHandler handles whole-state export and import.
type StateHandler struct {
	materials *services.MaterialService
	logger    *zap.Logger
}

// NewStateHandler creates a state handler.
func NewStateHandler(materials *services.MaterialService, logger *zap.Logger) *StateHandler {
	return &StateHandler{materials: materials, logger: logger}
}

// Export handles GET /api/export. The body is the bundle itself so the
// front end can save it as a backup file verbatim.
func (h *StateHandler) Export(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.materials.Export(r.Context())
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="studymesh-backup.json"`)
	common.WriteRawJSON(w, http.StatusOK, bundle)
}

// Import handles POST /api/import, replacing the stored collection with
// the posted bundle.
func (h *StateHandler) Import(w http.ResponseWriter, r *http.Request) {
	var bundle ports.StateBundle
	if err := common.ParseJSONBody(w, r, &bundle, maxImportBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "invalid bundle: "+err.Error())
		return
	}

	if err := h.materials.Import(r.Context(), &bundle); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, "state imported")
}
