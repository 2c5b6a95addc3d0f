// Package memory provides mutex-guarded in-memory repositories, used in
// tests and when no remote backend is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"studymesh-backend/domain/material"
	apperrors "studymesh-backend/pkg/errors"
)

// MaterialRepository stores materials in a map keyed by id.
type MaterialRepository struct {
	mu    sync.RWMutex
	items map[string]material.Material
}

// NewMaterialRepository creates an empty material repository.
func NewMaterialRepository() *MaterialRepository {
	return &MaterialRepository{items: make(map[string]material.Material)}
}

// Save inserts or replaces a material.
func (r *MaterialRepository) Save(_ context.Context, m *material.Material) error {
	if m == nil || m.ID == "" {
		return apperrors.NewValidationError("material id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[m.ID] = *m
	return nil
}

// FindByID returns one material by id.
func (r *MaterialRepository) FindByID(_ context.Context, id string) (*material.Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("material")
	}
	return &m, nil
}

// FindAll returns all materials ordered by creation time, oldest first,
// so graph rebuilds see the original insertion order.
func (r *MaterialRepository) FindAll(_ context.Context) ([]material.Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]material.Material, 0, len(r.items))
	for _, m := range r.items {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return all, nil
}

// Delete removes a material by id.
func (r *MaterialRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return apperrors.NewNotFoundError("material")
	}
	delete(r.items, id)
	return nil
}

// FlashcardRepository stores flashcards grouped by owning material.
type FlashcardRepository struct {
	mu      sync.RWMutex
	byOwner map[string][]material.Flashcard
	order   []string
}

// NewFlashcardRepository creates an empty flashcard repository.
func NewFlashcardRepository() *FlashcardRepository {
	return &FlashcardRepository{byOwner: make(map[string][]material.Flashcard)}
}

// SaveBatch stores a batch of cards under their owning materials.
func (r *FlashcardRepository) SaveBatch(_ context.Context, cards []material.Flashcard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, fc := range cards {
		if fc.MaterialID == "" {
			return apperrors.NewValidationError("flashcard needs an owning material")
		}
		if _, seen := r.byOwner[fc.MaterialID]; !seen {
			r.order = append(r.order, fc.MaterialID)
		}
		r.byOwner[fc.MaterialID] = append(r.byOwner[fc.MaterialID], fc)
	}
	return nil
}

// FindByMaterial returns the cards owned by one material.
func (r *FlashcardRepository) FindByMaterial(_ context.Context, materialID string) ([]material.Flashcard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cards := make([]material.Flashcard, len(r.byOwner[materialID]))
	copy(cards, r.byOwner[materialID])
	return cards, nil
}

// FindAll returns every card, grouped by material insertion order.
func (r *FlashcardRepository) FindAll(_ context.Context) ([]material.Flashcard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []material.Flashcard
	for _, owner := range r.order {
		all = append(all, r.byOwner[owner]...)
	}
	return all, nil
}

// DeleteByMaterial removes every card owned by a material. Deleting for a
// material with no cards is a no-op, not an error.
func (r *FlashcardRepository) DeleteByMaterial(_ context.Context, materialID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byOwner, materialID)
	for i, owner := range r.order {
		if owner == materialID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
