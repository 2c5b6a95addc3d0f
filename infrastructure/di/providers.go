package di

import (
	"fmt"

	"go.uber.org/zap"

	"studymesh-backend/application/ports"
	"studymesh-backend/application/services"
	"studymesh-backend/domain/material"
	"studymesh-backend/infrastructure/config"
	"studymesh-backend/infrastructure/extract"
	"studymesh-backend/infrastructure/persistence/localstore"
	"studymesh-backend/infrastructure/persistence/memory"
	"studymesh-backend/infrastructure/persistence/supabase"
	"studymesh-backend/pkg/auth"
)

// FilesDir is the directory the router serves under /files/ when uploads
// are stored locally. Empty when the remote blob store is active.
type FilesDir string

// Container holds all application dependencies.
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	Materials       ports.MaterialRepository
	Flashcards      ports.FlashcardRepository
	Tables          ports.TableStore
	Blobs           ports.BlobStore
	State           ports.StateStore
	Extractor       ports.TextExtractor
	GraphService    *services.GraphService
	MaterialService *services.MaterialService
	Validator       *auth.JWTValidator
	FilesDir        FilesDir
}

// ProvideLogger creates a new logger instance.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideSupabaseClient connects to Supabase when configured, nil otherwise.
func ProvideSupabaseClient(cfg *config.Config, logger *zap.Logger) (*supabase.Client, error) {
	if !cfg.HasSupabase() {
		logger.Info("supabase not configured, running on local storage only")
		return nil, nil
	}
	return supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, logger)
}

// ProvideTableStore exposes the remote table CRUD surface. Nil when no
// backend is configured; the router answers 503 on the data routes then.
func ProvideTableStore(client *supabase.Client) ports.TableStore {
	if client == nil {
		return nil
	}
	return client
}

// ProvideBlobStore picks remote storage when available and the local
// upload directory otherwise.
func ProvideBlobStore(client *supabase.Client, cfg *config.Config, logger *zap.Logger) (ports.BlobStore, error) {
	if client != nil {
		return client, nil
	}
	return localstore.NewBlobStore(cfg.DataDir, logger)
}

// ProvideFilesDir reports the directory to serve under /files/, empty when
// uploads live in remote storage.
func ProvideFilesDir(blobs ports.BlobStore) FilesDir {
	if local, ok := blobs.(*localstore.BlobStore); ok {
		return FilesDir(local.Dir())
	}
	return ""
}

// ProvideStateStore persists the whole collection to the local data dir.
func ProvideStateStore(cfg *config.Config, logger *zap.Logger) ports.StateStore {
	return localstore.NewStore(cfg.DataDir, logger)
}

// ProvideMaterialRepository creates the in-memory material repository.
func ProvideMaterialRepository() ports.MaterialRepository {
	return memory.NewMaterialRepository()
}

// ProvideFlashcardRepository creates the in-memory flashcard repository.
func ProvideFlashcardRepository() ports.FlashcardRepository {
	return memory.NewFlashcardRepository()
}

// ProvideExtractor creates the upload text extractor.
func ProvideExtractor(logger *zap.Logger) ports.TextExtractor {
	return extract.NewExtractor(logger)
}

// ProvideGenerator selects the content generation strategy.
func ProvideGenerator(cfg *config.Config) (material.ContentGenerator, error) {
	switch cfg.Generator {
	case "template":
		return material.NewTemplateGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown content generator %q", cfg.Generator)
	}
}

// ProvideProcessor creates the material processing pipeline.
func ProvideProcessor(generator material.ContentGenerator) *material.Processor {
	return material.NewProcessor(generator)
}

// ProvideGraphService creates the shared knowledge graph service.
func ProvideGraphService(logger *zap.Logger) *services.GraphService {
	return services.NewGraphService(logger)
}

// ProvideMaterialService wires the material application service.
func ProvideMaterialService(
	processor *material.Processor,
	materials ports.MaterialRepository,
	flashcards ports.FlashcardRepository,
	graphs *services.GraphService,
	state ports.StateStore,
	tables ports.TableStore,
	logger *zap.Logger,
) *services.MaterialService {
	return services.NewMaterialService(processor, materials, flashcards, graphs, state, tables, logger)
}

// ProvideJWTValidator builds the token validator for the admin surface.
// Development gets a fixed secret so local setups work out of the box;
// production refuses to start without one at config validation.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		secret = "development-secret-do-not-use-in-production"
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: secret,
		Issuer:    cfg.JWTIssuer,
	})
}
