package settings

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/goliatone/go-mdsync/internal/logging"
	"github.com/goliatone/go-mdsync/pkg/interfaces"
)

// ErrStoreRequired indicates settings were requested without a backing store.
var ErrStoreRequired = errors.New("settings: store is required")

// Well-known settings keys. Structured values are persisted as JSON strings;
// boolean flags as "1"/"0".
const (
	KeyVaultPath  = "vault_path"
	KeyConfigPath = "config_path"

	KeyContactsEnabled = "sync_contacts_global_enabled"
	KeyContactsClass   = "sync_contacts_global_class"
	KeyContactsMapping = "sync_contacts_global_mapping"
	KeyContactsFilter  = "sync_contacts_global_filter"
	KeyContactsConfigs = "sync_contacts_configs"

	KeyCalendarEnabled = "sync_calendar_global_enabled"
	KeyCalendarClass   = "sync_calendar_global_class"
	KeyCalendarMapping = "sync_calendar_global_mapping"
	KeyCalendarFilter  = "sync_calendar_global_filter"
	KeyCalendarConfigs = "animation_configs"
)

// Default class names gating the two sync branches.
const (
	DefaultContactClass  = "Personne"
	DefaultCalendarClass = "Action"
)

// Sync is the consistent configuration snapshot the orchestrator works from.
// It is loaded once per write event so one event never observes a mix of old
// and new settings.
type Sync struct {
	VaultPath  string
	ConfigPath string
	Contacts   ContactSettings
	Calendar   CalendarSettings
}

// ContactSettings groups the contact branch configuration.
type ContactSettings struct {
	Enabled bool
	Class   string
	Mapping ContactMapping
	Filter  map[string]string
	Configs []ContactConfig
}

// CalendarSettings groups the calendar branch configuration.
type CalendarSettings struct {
	Enabled bool
	Class   string
	Mapping CalendarMapping
	Filter  map[string]string
	Configs []CalendarConfig
}

// Load reads the full sync configuration from the store. Missing keys fall
// back to defaults and invalid JSON payloads degrade to empty values; a
// configuration problem is never fatal to the surrounding event.
func Load(ctx context.Context, store interfaces.SettingsStore, logger interfaces.Logger) (*Sync, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if logger == nil {
		logger = logging.NoOp()
	}

	loader := &loader{ctx: ctx, store: store, logger: logger}

	out := &Sync{
		VaultPath:  loader.get(KeyVaultPath, "vault"),
		ConfigPath: loader.get(KeyConfigPath, ""),
		Contacts: ContactSettings{
			Enabled: loader.flag(KeyContactsEnabled),
			Class:   loader.get(KeyContactsClass, DefaultContactClass),
			Filter:  loader.filter(KeyContactsFilter),
		},
		Calendar: CalendarSettings{
			Enabled: loader.flag(KeyCalendarEnabled),
			Class:   loader.get(KeyCalendarClass, DefaultCalendarClass),
			Filter:  loader.filter(KeyCalendarFilter),
		},
	}

	loader.decode(KeyContactsMapping, &out.Contacts.Mapping)
	loader.decode(KeyContactsConfigs, &out.Contacts.Configs)
	loader.decode(KeyCalendarMapping, &out.Calendar.Mapping)
	loader.decode(KeyCalendarConfigs, &out.Calendar.Configs)

	return out, nil
}

type loader struct {
	ctx    context.Context
	store  interfaces.SettingsStore
	logger interfaces.Logger
}

func (l *loader) get(key, def string) string {
	value, err := l.store.Get(l.ctx, key, def)
	if err != nil {
		l.logger.Warn("settings read failed, using default", "key", key, "error", err)
		return def
	}
	return value
}

func (l *loader) flag(key string) bool {
	return l.get(key, "0") == "1"
}

func (l *loader) filter(key string) map[string]string {
	out := map[string]string{}
	l.decode(key, &out)
	return out
}

// decode unmarshals a JSON settings payload, leaving the target untouched on
// malformed input.
func (l *loader) decode(key string, target any) {
	raw := l.get(key, "")
	if raw == "" || raw == "{}" || raw == "[]" {
		return
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		l.logger.Warn("settings payload is not valid JSON, ignoring", "key", key, "error", err)
	}
}
