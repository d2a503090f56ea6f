package configsync

import (
	"context"

	"github.com/boardlink/core/internal/modules/sports/teams"
	"github.com/boardlink/core/internal/realtime"
	"github.com/boardlink/core/internal/store"
	"go.uber.org/zap"
)

type Service struct {
	store  *store.Store
	pub    *realtime.Publisher
	logger *zap.Logger
}

func NewService(st *store.Store, pub *realtime.Publisher, logger *zap.Logger) *Service {
	return &Service{store: st, pub: pub, logger: logger}
}

// Apply merges a partial patch onto the device's last stored configuration,
// validates the candidate, persists it as a new version and pushes it to the
// device. The ownership gate runs first under the caller's own capability;
// everything after it runs under the service capability.
func (s *Service) Apply(ctx context.Context, caller store.Capability, author, deviceID string, patch map[string]interface{}) (*ApplyResult, error) {
	if _, err := s.store.AuthorizeDevice(ctx, caller, deviceID); err != nil {
		return nil, err
	}
	return s.applyPatch(ctx, author, deviceID, patch, SourceRemote)
}

// SyncSports rebuilds the sports section of the configuration from the
// stored per-sport entries, resolving every favorite reference against the
// team directory, then runs the same merge/validate/persist/publish path.
func (s *Service) SyncSports(ctx context.Context, caller store.Capability, author, deviceID string) (*ApplyResult, error) {
	if _, err := s.store.AuthorizeDevice(ctx, caller, deviceID); err != nil {
		return nil, err
	}

	svc := s.store.Service()
	entries, err := s.store.ListSportEntries(ctx, svc, deviceID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errNoSportEntries
	}

	directories := map[string][]store.TeamRow{}
	sports := make([]interface{}, 0, len(entries))
	for _, entry := range entries {
		directory, ok := directories[entry.Sport]
		if !ok {
			directory, err = s.store.ListTeams(ctx, svc, entry.Sport)
			if err != nil {
				return nil, err
			}
			directories[entry.Sport] = directory
		}

		doc := map[string]interface{}{
			"sport":    entry.Sport,
			"enabled":  entry.Enabled,
			"priority": entry.Priority,
		}
		if len(entry.FavoriteTeams) > 0 {
			favorites := make([]interface{}, len(entry.FavoriteTeams))
			for i, ref := range entry.FavoriteTeams {
				t := teams.Resolve(directory, ref)
				favorites[i] = map[string]interface{}{
					"name": t.Name,
					"id":   t.ID,
					"abbr": t.Abbreviation,
				}
			}
			doc["favorites"] = favorites
		}
		sports = append(sports, doc)
	}

	patch := map[string]interface{}{"sports": sports}
	return s.applyPatch(ctx, author, deviceID, patch, SourceSportsSync)
}

// Current returns the latest stored configuration version for the device.
func (s *Service) Current(ctx context.Context, caller store.Capability, deviceID string) (*store.ConfigVersion, error) {
	if _, err := s.store.AuthorizeDevice(ctx, caller, deviceID); err != nil {
		return nil, err
	}
	return s.store.LatestConfig(ctx, caller, deviceID)
}

// applyPatch runs after the ownership gate has passed.
func (s *Service) applyPatch(ctx context.Context, author, deviceID string, patch map[string]interface{}, source string) (*ApplyResult, error) {
	svc := s.store.Service()

	prior, err := s.store.LatestConfig(ctx, svc, deviceID)
	if err != nil {
		return nil, err
	}
	base := DefaultConfig()
	if prior != nil {
		base = prior.Content
	}

	merged := Merge(base, patch)
	violations, err := ValidateConfig(merged)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return &ApplyResult{SchemaErrors: violations}, nil
	}

	version, err := s.store.InsertConfig(ctx, svc, store.ConfigVersion{
		DeviceID: deviceID,
		Content:  merged,
		Source:   source,
		Author:   author,
	})
	if err != nil {
		return nil, err
	}

	// The version is durable from here on. A failed push is a degraded
	// outcome, not a failed request: the device reconciles on reconnect.
	published := true
	if err := s.pub.Publish(ctx, deviceID, realtime.NewConfigPush(merged)); err != nil {
		published = false
		s.logger.Warn("config push failed",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
	}
	return &ApplyResult{Version: version, Published: published}, nil
}
