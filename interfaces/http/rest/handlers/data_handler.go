package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"studymesh-backend/application/ports"
	"studymesh-backend/pkg/common"
)

// maxRowBodyBytes caps generic row insert payloads.
const maxRowBodyBytes = 1 << 20

// DataHandler proxies generic table CRUD to the managed database backend.
// Keeping this server-side means the service role key never ships to a
// browser.
type DataHandler struct {
	tables ports.TableStore
	logger *zap.Logger
}

// NewDataHandler creates a data handler.
func NewDataHandler(tables ports.TableStore, logger *zap.Logger) *DataHandler {
	return &DataHandler{tables: tables, logger: logger}
}

// GetTable handles GET /api/data/{table}. Supports orderBy and ascending
// query parameters; defaults to created_at descending.
func (h *DataHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	if table == "" {
		common.RespondError(w, http.StatusBadRequest, "table name is required")
		return
	}

	orderBy := r.URL.Query().Get("orderBy")
	if orderBy == "" {
		orderBy = "created_at"
	}
	ascending := r.URL.Query().Get("ascending") == "true"

	rows, err := h.tables.Select(r.Context(), table, orderBy, ascending)
	if err != nil {
		h.logger.Error("table read failed",
			zap.String("table", table),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondList(w, http.StatusOK, rows, len(rows))
}

// InsertRow handles POST /api/data/{table}.
func (h *DataHandler) InsertRow(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	if table == "" {
		common.RespondError(w, http.StatusBadRequest, "table name is required")
		return
	}

	var row map[string]interface{}
	if err := common.ParseJSONBody(w, r, &row, maxRowBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(row) == 0 {
		common.RespondError(w, http.StatusBadRequest, "row data is required")
		return
	}

	inserted, err := h.tables.Insert(r.Context(), table, row)
	if err != nil {
		h.logger.Error("row insert failed",
			zap.String("table", table),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, inserted)
}

// DeleteRow handles DELETE /api/data/{table}/{id}.
func (h *DataHandler) DeleteRow(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	id := chi.URLParam(r, "id")
	if table == "" || id == "" {
		common.RespondError(w, http.StatusBadRequest, "table name and row id are required")
		return
	}

	if err := h.tables.Delete(r.Context(), table, id); err != nil {
		h.logger.Error("row delete failed",
			zap.String("table", table),
			zap.String("id", id),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondMessage(w, http.StatusOK, "row deleted")
}
