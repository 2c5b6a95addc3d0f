//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"studymesh-backend/infrastructure/config"
)

// SuperSet is the main provider set containing all providers.
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideSupabaseClient,
	ProvideTableStore,
	ProvideBlobStore,
	ProvideFilesDir,
	ProvideStateStore,
	ProvideMaterialRepository,
	ProvideFlashcardRepository,
	ProvideExtractor,
	ProvideGenerator,
	ProvideProcessor,
	ProvideGraphService,
	ProvideMaterialService,
	ProvideJWTValidator,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container.
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
