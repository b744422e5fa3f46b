package crm

import (
	"fmt"

	"github.com/melioro/connectai/internal/core/domain"
	"github.com/melioro/connectai/internal/core/ports/driven"
)

// Factory creates CRM connectors by provider name. Constructors are
// registered by the composition root so this package does not import the
// vendor packages.
type Factory struct {
	constructors map[string]Constructor
}

// Constructor builds a connector from CRM settings and table configuration.
type Constructor func(settings domain.CRMSettings, tables driven.TableConfigSource) (driven.CRMConnector, error)

// NewFactory creates an empty connector factory.
func NewFactory() *Factory {
	return &Factory{constructors: make(map[string]Constructor)}
}

// Register adds a constructor for the given provider name.
func (f *Factory) Register(provider string, ctor Constructor) {
	f.constructors[provider] = ctor
}

// Create builds a connector for the configured provider.
func (f *Factory) Create(settings domain.CRMSettings, tables driven.TableConfigSource) (driven.CRMConnector, error) {
	ctor, ok := f.constructors[settings.Provider]
	if !ok {
		return nil, fmt.Errorf("crm: %w: %q", domain.ErrUnsupportedProvider, settings.Provider)
	}
	return ctor(settings, tables)
}
