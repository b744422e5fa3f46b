package ai

import (
	"fmt"

	"github.com/melioro/connectai/internal/core/domain"
	"github.com/melioro/connectai/internal/core/ports/driven"
)

// Factory creates AI services by provider name. Constructors are
// registered by the composition root so this package does not import the
// vendor packages.
type Factory struct {
	constructors map[string]Constructor
}

// Constructor builds an AI service from AI settings.
type Constructor func(settings domain.AISettings) (driven.AIService, error)

// NewFactory creates an empty AI service factory.
func NewFactory() *Factory {
	return &Factory{constructors: make(map[string]Constructor)}
}

// Register adds a constructor for the given provider name.
func (f *Factory) Register(provider string, ctor Constructor) {
	f.constructors[provider] = ctor
}

// Create builds an AI service for the configured provider.
func (f *Factory) Create(settings domain.AISettings) (driven.AIService, error) {
	ctor, ok := f.constructors[settings.Provider]
	if !ok {
		return nil, fmt.Errorf("ai: %w: %q", domain.ErrUnsupportedProvider, settings.Provider)
	}
	return ctor(settings)
}
