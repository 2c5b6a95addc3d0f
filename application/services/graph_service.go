package services

import (
	"sync"

	"go.uber.org/zap"

	"studymesh-backend/domain/graph"
	"studymesh-backend/domain/material"
)

// GraphService owns the in-memory knowledge graph shared across requests.
// The domain graph itself is not concurrency-safe, so all access goes
// through this service's lock.
type GraphService struct {
	mu     sync.RWMutex
	graph  *graph.Graph
	logger *zap.Logger
}

// NewGraphService creates a graph service with an empty graph.
func NewGraphService(logger *zap.Logger) *GraphService {
	return &GraphService{
		graph:  graph.New(),
		logger: logger,
	}
}

// Snapshot returns the current node-link payload.
func (s *GraphService) Snapshot() graph.Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph.Data()
}

// AddMaterial incrementally links one new material into the graph.
func (s *GraphService) AddMaterial(m *material.Material) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.graph.AddMaterial(m); err != nil {
		return err
	}
	s.logger.Debug("material linked into graph",
		zap.String("materialID", m.ID),
		zap.Int("keywords", len(m.Keywords)),
	)
	return nil
}

// RemoveMaterial removes a material's nodes and edges. A material that
// never made it into the graph is not an error worth failing a delete for;
// the caller already removed the record.
func (s *GraphService) RemoveMaterial(materialID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.graph.RemoveMaterial(materialID); err != nil {
		s.logger.Warn("material not present in graph",
			zap.String("materialID", materialID),
			zap.Error(err),
		)
	}
}

// Rebuild replaces the graph from a full material collection.
func (s *GraphService) Rebuild(materials []material.Material) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.graph.Rebuild(materials)
	s.logger.Info("graph rebuilt",
		zap.Int("materials", len(materials)),
	)
}

// Validate checks graph invariants, used by tests and the health endpoint.
func (s *GraphService) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph.Validate()
}
