package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"studymesh-backend/application/services"
	"studymesh-backend/pkg/common"
)

// GraphHandler serves the knowledge graph visualization payload.
type GraphHandler struct {
	graphs *services.GraphService
	logger *zap.Logger
}

// NewGraphHandler creates a graph handler.
func NewGraphHandler(graphs *services.GraphService, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{graphs: graphs, logger: logger}
}

// GetGraph handles GET /api/graph. The payload is the node-link shape the
// force-directed renderer consumes directly.
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, h.graphs.Snapshot())
}
