package driven

import "github.com/melioro/connectai/internal/core/domain"

// TableConfigSource supplies per-table routing metadata to the core.
// The engine uses it to resolve entity types and search fields, the
// analyzer to map query keywords onto entity types.
type TableConfigSource interface {
	// Tables returns all configured tables in definition order.
	// Order matters: keyword classification takes the first hit.
	Tables() []domain.TableConfig

	// TableByID returns the configuration for a table id.
	// Returns false when the table is not configured.
	TableByID(id string) (domain.TableConfig, bool)

	// TableByType returns the configuration for an entity type.
	// Returns false when no table carries the type.
	TableByType(entityType string) (domain.TableConfig, bool)
}

// DisplayConfigSource supplies display limits to the processor.
type DisplayConfigSource interface {
	// Display returns the current display settings.
	Display() domain.DisplaySettings

	// App returns the application name and version.
	App() domain.AppInfo
}
