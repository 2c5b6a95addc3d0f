package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"studymesh-backend/application/ports"
	"studymesh-backend/domain/material"
	apperrors "studymesh-backend/pkg/errors"
	"studymesh-backend/pkg/utils"
)

// MaterialsTable is the backend table holding material metadata rows.
const MaterialsTable = "materials"

// MaterialService orchestrates material creation, lookup, and deletion:
// processing raw text into a Material, persisting it and its flashcards,
// and keeping the knowledge graph consistent with the collection.
type MaterialService struct {
	processor  *material.Processor
	materials  ports.MaterialRepository
	flashcards ports.FlashcardRepository
	graphs     *GraphService
	state      ports.StateStore
	tables     ports.TableStore
	logger     *zap.Logger

	settingsMu sync.RWMutex
	settings   ports.Settings
}

// NewMaterialService wires a material service. state and tables may be nil
// when local persistence or the remote backend is not configured.
func NewMaterialService(
	processor *material.Processor,
	materials ports.MaterialRepository,
	flashcards ports.FlashcardRepository,
	graphs *GraphService,
	state ports.StateStore,
	tables ports.TableStore,
	logger *zap.Logger,
) *MaterialService {
	return &MaterialService{
		processor:  processor,
		materials:  materials,
		flashcards: flashcards,
		graphs:     graphs,
		state:      state,
		tables:     tables,
		logger:     logger,
	}
}

// CreateFromText processes pasted text into a full material and stores it.
func (s *MaterialService) CreateFromText(ctx context.Context, text, title string) (*material.Material, error) {
	m, err := s.processor.ProcessText(text, title)
	if err != nil {
		return nil, err
	}

	if err := s.store(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// CreateFromUpload builds a material for a stored upload. The blob is
// already persisted and authoritative, so repository or metadata failures
// past this point degrade to warnings instead of failing the upload.
func (s *MaterialService) CreateFromUpload(ctx context.Context, file material.FileInfo, title, extractedText string) (*material.Material, error) {
	m, err := s.processor.ProcessUpload(file, title, extractedText)
	if err != nil {
		return nil, err
	}

	if err := s.store(ctx, m); err != nil {
		s.logger.Warn("material persisted partially after upload",
			zap.String("materialID", m.ID),
			zap.Error(err),
		)
	}

	s.insertMetadataRow(ctx, m)
	return m, nil
}

// Get returns one material by id.
func (s *MaterialService) Get(ctx context.Context, id string) (*material.Material, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("material id is required")
	}
	return s.materials.FindByID(ctx, id)
}

// List returns all materials.
func (s *MaterialService) List(ctx context.Context) ([]material.Material, error) {
	return s.materials.FindAll(ctx)
}

// ListFlashcards returns every stored flashcard.
func (s *MaterialService) ListFlashcards(ctx context.Context) ([]material.Flashcard, error) {
	return s.flashcards.FindAll(ctx)
}

// Delete removes a material and cascades: its flashcards go with it and
// the graph drops its nodes and edges.
func (s *MaterialService) Delete(ctx context.Context, id string) error {
	if _, err := s.materials.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.materials.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.flashcards.DeleteByMaterial(ctx, id); err != nil {
		return apperrors.Wrap(err, "delete flashcards")
	}
	s.graphs.RemoveMaterial(id)
	s.persistState(ctx)

	s.logger.Info("material deleted",
		zap.String("materialID", id),
	)
	return nil
}

// Export assembles the whole local state as one bundle.
func (s *MaterialService) Export(ctx context.Context) (*ports.StateBundle, error) {
	materials, err := s.materials.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	cards, err := s.flashcards.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.StateBundle{
		Materials:  materials,
		Flashcards: cards,
		Graph:      s.graphs.Snapshot(),
		Settings:   s.Settings(),
		ExportDate: utils.NowRFC3339(),
	}, nil
}

// Settings returns the current user preference blob.
func (s *MaterialService) Settings() ports.Settings {
	s.settingsMu.RLock()
	defer s.settingsMu.RUnlock()
	return s.settings
}

// SetSettings replaces the user preference blob. Called on import and on
// startup state restore so exports round-trip settings unchanged.
func (s *MaterialService) SetSettings(settings ports.Settings) {
	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()
	s.settings = settings
}

// Import replaces the stored collection with the bundle's contents and
// rebuilds the graph from scratch.
func (s *MaterialService) Import(ctx context.Context, bundle *ports.StateBundle) error {
	if bundle == nil {
		return apperrors.NewValidationError("bundle cannot be empty")
	}

	existing, err := s.materials.FindAll(ctx)
	if err != nil {
		return err
	}
	for _, m := range existing {
		if err := s.materials.Delete(ctx, m.ID); err != nil {
			return err
		}
		if err := s.flashcards.DeleteByMaterial(ctx, m.ID); err != nil {
			return err
		}
	}

	for i := range bundle.Materials {
		m := bundle.Materials[i]
		if err := m.Validate(); err != nil {
			return apperrors.Wrapf(err, "invalid material %q", m.ID)
		}
		if err := s.materials.Save(ctx, &m); err != nil {
			return err
		}
	}
	if len(bundle.Flashcards) > 0 {
		if err := s.flashcards.SaveBatch(ctx, bundle.Flashcards); err != nil {
			return err
		}
	}

	s.SetSettings(bundle.Settings)
	s.graphs.Rebuild(bundle.Materials)
	s.persistState(ctx)

	s.logger.Info("state imported",
		zap.Int("materials", len(bundle.Materials)),
		zap.Int("flashcards", len(bundle.Flashcards)),
	)
	return nil
}

// store saves a processed material, its flashcards, and its graph nodes.
func (s *MaterialService) store(ctx context.Context, m *material.Material) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := s.materials.Save(ctx, m); err != nil {
		return err
	}
	if len(m.Flashcards) > 0 {
		if err := s.flashcards.SaveBatch(ctx, m.Flashcards); err != nil {
			return apperrors.Wrap(err, "save flashcards")
		}
	}
	if err := s.graphs.AddMaterial(m); err != nil {
		return err
	}
	s.persistState(ctx)
	return nil
}

// insertMetadataRow mirrors the material row to the remote backend. Insert
// failure after a successful blob upload is reported as success overall;
// the file artifact is authoritative.
func (s *MaterialService) insertMetadataRow(ctx context.Context, m *material.Material) {
	if s.tables == nil {
		return
	}

	topics := make([]map[string]interface{}, 0, len(m.Topics))
	for _, t := range m.Topics {
		topics = append(topics, map[string]interface{}{
			"name":       t.Name,
			"importance": t.Importance,
			"keywords":   t.Keywords,
		})
	}

	row := map[string]interface{}{
		"id":         m.ID,
		"title":      m.Title,
		"file_name":  m.FileName,
		"file_url":   m.FileURL,
		"file_size":  m.FileSize,
		"mime_type":  m.MimeType,
		"keywords":   m.Keywords,
		"topics":     topics,
		"created_at": m.CreatedAt.Format(time.RFC3339),
	}

	if _, err := s.tables.Insert(ctx, MaterialsTable, row); err != nil {
		s.logger.Warn("metadata insert failed, file upload stands",
			zap.String("materialID", m.ID),
			zap.Error(err),
		)
	}
}

// persistState writes the local bundle fire-and-forget. Failures are
// logged and the service keeps serving from memory.
func (s *MaterialService) persistState(ctx context.Context) {
	if s.state == nil {
		return
	}

	bundle, err := s.Export(ctx)
	if err != nil {
		s.logger.Warn("could not assemble state bundle", zap.Error(err))
		return
	}
	bundle.ExportDate = ""

	if err := s.state.Save(ctx, bundle); err != nil {
		s.logger.Warn("local state write failed, continuing in memory",
			zap.Error(err),
		)
	}
}
