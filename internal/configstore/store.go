package configstore

import (
	"errors"

	"github.com/goliatone/go-mdsync/pkg/interfaces"
)

var errKeyRequired = errors.New("configstore: settings key is required")

var (
	_ interfaces.SettingsStore = (*MemoryStore)(nil)
	_ interfaces.SettingsStore = (*BunStore)(nil)
)
