package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/melioro/connectai/internal/core/domain"
	"github.com/melioro/connectai/internal/core/ports/driven"
	"github.com/melioro/connectai/internal/logger"
)

// Ensure ConfigStore implements the interfaces.
var (
	_ driven.TableConfigSource   = (*ConfigStore)(nil)
	_ driven.DisplayConfigSource = (*ConfigStore)(nil)
	_ driven.SettingsStore       = (*ConfigStore)(nil)
)

// fileConfig is the TOML schema of ~/.connectai/config.toml.
type fileConfig struct {
	App     appConfig     `toml:"app"`
	Display displayConfig `toml:"display"`
	AI      aiConfig      `toml:"ai"`
	CRM     crmConfig     `toml:"crm"`
	Tables  []tableConfig `toml:"tables"`

	// ExampleQueries seed the chat greeting.
	ExampleQueries []string `toml:"example_queries"`
}

type appConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

type displayConfig struct {
	MaxRecordsToShow int `toml:"max_records_to_show"`
}

type aiConfig struct {
	Provider string `toml:"provider"`
	APIKey   string `toml:"api_key"`
	Model    string `toml:"model"`
}

type crmConfig struct {
	Provider     string `toml:"provider"`
	APIToken     string `toml:"api_token"`
	AppID        string `toml:"app_id"`
	RecordsLimit int    `toml:"records_limit"`
}

type tableConfig struct {
	ID           string   `toml:"id"`
	Name         string   `toml:"name"`
	Type         string   `toml:"type"`
	Keywords     []string `toml:"keywords"`
	SearchFields []string `toml:"search_fields"`
}

// ConfigStore is a TOML-backed configuration store for ConnectAI.
// It is the single source of table routing metadata, display limits and
// provider settings.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	cfg      fileConfig
}

// NewConfigStore creates a config store at configDir/config.toml,
// defaulting to ~/.connectai. A missing file yields the built-in defaults;
// the file is only written on Save.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".connectai")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		cfg:      defaultConfig(),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// defaultConfig is the built-in configuration used until a file exists.
// Table keywords and search fields mirror the CRM schema the assistant is
// shipped against.
func defaultConfig() fileConfig {
	return fileConfig{
		App:     appConfig{Name: "ConnectAI", Version: "2.0.0"},
		Display: displayConfig{MaxRecordsToShow: 20},
		Tables: []tableConfig{
			{
				ID:           "Customers",
				Name:         "Firmy",
				Type:         "company",
				Keywords:     []string{"firma", "firmy", "firem", "firmu", "firmě", "společnost", "společnosti"},
				SearchFields: []string{"name", "nazev", "email", "ico"},
			},
			{
				ID:           "Contacts",
				Name:         "Kontakty",
				Type:         "contact",
				Keywords:     []string{"kontakt", "kontakty", "kontaktů", "kontaktu", "osoba", "osoby", "lidi"},
				SearchFields: []string{"name", "jmeno", "prijmeni", "email", "telefon"},
			},
			{
				ID:           "Deals",
				Name:         "Obchodní případy",
				Type:         "deal",
				Keywords:     []string{"obchod", "obchody", "případ", "případy", "deal", "dealy"},
				SearchFields: []string{"name", "nazev", "title", "value", "status"},
			},
			{
				ID:           "Activities",
				Name:         "Aktivity",
				Type:         "activity",
				Keywords:     []string{"aktivita", "aktivity", "úkol", "úkoly", "schůzka", "schůzky"},
				SearchFields: []string{"name", "title", "description", "status"},
			},
		},
		ExampleQueries: []string{
			"Kolik firem je v systému?",
			"Vypiš všechny kontakty",
			"Najdi firmu Alza",
			"Jaké kontakty má firma Microsoft?",
		},
	}
}

// Tables returns the configured tables in definition order.
func (s *ConfigStore) Tables() []domain.TableConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tables := make([]domain.TableConfig, 0, len(s.cfg.Tables))
	for _, t := range s.cfg.Tables {
		tables = append(tables, toDomainTable(t))
	}
	return tables
}

// TableByID returns the configuration for a table id.
func (s *ConfigStore) TableByID(id string) (domain.TableConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.cfg.Tables {
		if t.ID == id {
			return toDomainTable(t), true
		}
	}
	return domain.TableConfig{}, false
}

// TableByType returns the configuration for an entity type.
func (s *ConfigStore) TableByType(entityType string) (domain.TableConfig, bool) {
	if entityType == "" {
		return domain.TableConfig{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.cfg.Tables {
		if t.Type == entityType {
			return toDomainTable(t), true
		}
	}
	return domain.TableConfig{}, false
}

func toDomainTable(t tableConfig) domain.TableConfig {
	return domain.TableConfig{
		ID:           t.ID,
		Name:         t.Name,
		EntityType:   t.Type,
		Keywords:     append([]string(nil), t.Keywords...),
		SearchFields: append([]string(nil), t.SearchFields...),
	}
}

// Display returns the display settings.
func (s *ConfigStore) Display() domain.DisplaySettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings := domain.DisplaySettings{MaxRecordsToShow: s.cfg.Display.MaxRecordsToShow}
	if settings.MaxRecordsToShow <= 0 {
		settings = domain.DefaultDisplaySettings()
	}
	return settings
}

// App returns the application identity.
func (s *ConfigStore) App() domain.AppInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.AppInfo{Name: s.cfg.App.Name, Version: s.cfg.App.Version}
}

// AISettings returns the AI provider settings.
func (s *ConfigStore) AISettings() domain.AISettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.AISettings{
		Provider: s.cfg.AI.Provider,
		APIKey:   s.cfg.AI.APIKey,
		Model:    s.cfg.AI.Model,
	}
}

// SetAISettings updates and persists the AI provider settings.
func (s *ConfigStore) SetAISettings(settings domain.AISettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.AI = aiConfig{Provider: settings.Provider, APIKey: settings.APIKey, Model: settings.Model}
	return s.save()
}

// CRMSettings returns the CRM provider settings.
func (s *ConfigStore) CRMSettings() domain.CRMSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CRMSettings{
		Provider:     s.cfg.CRM.Provider,
		APIToken:     s.cfg.CRM.APIToken,
		AppID:        s.cfg.CRM.AppID,
		RecordsLimit: s.cfg.CRM.RecordsLimit,
	}
}

// SetCRMSettings updates and persists the CRM provider settings.
func (s *ConfigStore) SetCRMSettings(settings domain.CRMSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.CRM = crmConfig{
		Provider:     settings.Provider,
		APIToken:     settings.APIToken,
		AppID:        settings.AppID,
		RecordsLimit: settings.RecordsLimit,
	}
	return s.save()
}

// ExampleQueries returns the configured example queries.
func (s *ConfigStore) ExampleQueries() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.cfg.ExampleQueries...)
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.cfg)
	if err != nil {
		return err
	}

	// The file holds API tokens; keep it private.
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file. A missing file leaves the
// defaults in place.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	loaded := defaultConfig()
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}

	s.cfg = loaded
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Watch reloads the configuration whenever the file changes on disk and
// signals each successful reload on the returned channel. It stops when
// the context is cancelled. Used by long-running chat sessions to pick up
// edits without a restart.
func (s *ConfigStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		watcher.Close()
		return nil, err
	}

	changes := make(chan struct{}, 1)

	go func() {
		defer watcher.Close()
		defer close(changes)

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.filePath {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := s.Load(); err != nil {
					logger.Warn("Config reload failed: %v", err)
					continue
				}
				logger.Info("Configuration reloaded from %s", s.filePath)
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Config watch error: %v", err)
			}
		}
	}()

	return changes, nil
}
