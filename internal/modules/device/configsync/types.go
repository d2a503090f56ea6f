package configsync

import (
	"errors"

	"github.com/boardlink/core/internal/store"
)

// Sources recorded on configuration versions.
const (
	SourceRemote     = "remote"
	SourceSportsSync = "sports-sync"
)

var errNoSportEntries = errors.New("no sport entries configured for device")

// ApplyResult is the outcome of one apply request. SchemaErrors set means
// nothing was persisted. Published false with a Version set means the
// change is durable but the live push did not go out; the device catches
// up on its next reconnect.
type ApplyResult struct {
	Version      *store.ConfigVersion
	Published    bool
	SchemaErrors []SchemaError
}
