package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-mdsync/pkg/interfaces"
)

// SaveContactConfigs validates and persists the contact configuration list.
func SaveContactConfigs(ctx context.Context, store interfaces.SettingsStore, configs []ContactConfig) error {
	if store == nil {
		return ErrStoreRequired
	}
	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("settings: contact config %q: %w", cfg.ID, err)
		}
	}
	return setJSON(ctx, store, KeyContactsConfigs, configs)
}

// SaveCalendarConfigs validates and persists the calendar (array-property)
// configuration list.
func SaveCalendarConfigs(ctx context.Context, store interfaces.SettingsStore, configs []CalendarConfig) error {
	if store == nil {
		return ErrStoreRequired
	}
	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("settings: calendar config %q: %w", cfg.ID, err)
		}
	}
	return setJSON(ctx, store, KeyCalendarConfigs, configs)
}

// SaveContactGlobals persists the contact branch globals.
func SaveContactGlobals(ctx context.Context, store interfaces.SettingsStore, s ContactSettings) error {
	if store == nil {
		return ErrStoreRequired
	}
	if err := store.Set(ctx, KeyContactsEnabled, flagValue(s.Enabled)); err != nil {
		return err
	}
	class := s.Class
	if class == "" {
		class = DefaultContactClass
	}
	if err := store.Set(ctx, KeyContactsClass, class); err != nil {
		return err
	}
	if err := setJSON(ctx, store, KeyContactsMapping, s.Mapping); err != nil {
		return err
	}
	return setJSON(ctx, store, KeyContactsFilter, s.Filter)
}

// SaveCalendarGlobals persists the calendar branch globals.
func SaveCalendarGlobals(ctx context.Context, store interfaces.SettingsStore, s CalendarSettings) error {
	if store == nil {
		return ErrStoreRequired
	}
	if err := store.Set(ctx, KeyCalendarEnabled, flagValue(s.Enabled)); err != nil {
		return err
	}
	class := s.Class
	if class == "" {
		class = DefaultCalendarClass
	}
	if err := store.Set(ctx, KeyCalendarClass, class); err != nil {
		return err
	}
	if err := setJSON(ctx, store, KeyCalendarMapping, s.Mapping); err != nil {
		return err
	}
	return setJSON(ctx, store, KeyCalendarFilter, s.Filter)
}

func setJSON(ctx context.Context, store interfaces.SettingsStore, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("settings: encode %s: %w", key, err)
	}
	return store.Set(ctx, key, string(payload))
}

func flagValue(enabled bool) string {
	if enabled {
		return "1"
	}
	return "0"
}
