// Package ports defines the interfaces the application layer depends on.
// Infrastructure packages provide the implementations; services receive
// them by injection and never construct them.
package ports

import (
	"context"

	"studymesh-backend/domain/graph"
	"studymesh-backend/domain/material"
)

// MaterialRepository stores material records.
type MaterialRepository interface {
	Save(ctx context.Context, m *material.Material) error
	FindByID(ctx context.Context, id string) (*material.Material, error)
	FindAll(ctx context.Context) ([]material.Material, error)
	Delete(ctx context.Context, id string) error
}

// FlashcardRepository stores flashcards, always batch-owned by a material.
type FlashcardRepository interface {
	SaveBatch(ctx context.Context, cards []material.Flashcard) error
	FindByMaterial(ctx context.Context, materialID string) ([]material.Flashcard, error)
	FindAll(ctx context.Context) ([]material.Flashcard, error)
	DeleteByMaterial(ctx context.Context, materialID string) error
}

// TableStore is the generic row CRUD surface proxied to the managed
// database backend. Rows are schemaless maps; the backend owns the schema.
type TableStore interface {
	Select(ctx context.Context, table, orderBy string, ascending bool) ([]map[string]interface{}, error)
	Insert(ctx context.Context, table string, row map[string]interface{}) (map[string]interface{}, error)
	Delete(ctx context.Context, table, id string) error
}

// BlobStore stores uploaded files and returns their public URL.
type BlobStore interface {
	Upload(ctx context.Context, name, mimeType string, data []byte) (string, error)
}

// TextExtractor pulls plain text out of an uploaded file. Implementations
// return an empty string, not an error, for formats they cannot read.
type TextExtractor interface {
	Extract(ctx context.Context, filename, mimeType string, data []byte) (string, error)
}

// Settings is the user preference blob round-tripped with the front end.
type Settings struct {
	APIProvider string `json:"apiProvider"`
	APIKey      string `json:"apiKey"`
	Theme       string `json:"theme"`
}

// StateBundle is the whole persisted local state: materials, flashcards,
// the graph, and settings. Export and import round-trip it as one JSON
// document.
type StateBundle struct {
	Materials  []material.Material  `json:"materials"`
	Flashcards []material.Flashcard `json:"flashcards"`
	Graph      graph.Data           `json:"graph"`
	Settings   Settings             `json:"settings"`
	ExportDate string               `json:"exportDate,omitempty"`
}

// StateStore persists the StateBundle locally. Writes are fire-and-forget
// from the caller's perspective: a failed write degrades to in-memory
// state and must never be surfaced as fatal.
type StateStore interface {
	Save(ctx context.Context, bundle *StateBundle) error
	Load(ctx context.Context) (*StateBundle, error)
}
