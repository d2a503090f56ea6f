package teams

import (
	"context"

	"github.com/boardlink/core/internal/store"
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service { return &Service{store: st} }

// Directory returns the catalog for one sport. The directory is not
// owner-scoped, so it is read under the service capability.
func (s *Service) Directory(ctx context.Context, sport string) ([]store.TeamRow, error) {
	return s.store.ListTeams(ctx, s.store.Service(), sport)
}

// ResolveAll resolves each reference against the sport's directory,
// preserving input order. One directory fetch serves every reference.
func (s *Service) ResolveAll(ctx context.Context, sport string, references []string) ([]Team, error) {
	directory, err := s.Directory(ctx, sport)
	if err != nil {
		return nil, err
	}
	resolved := make([]Team, len(references))
	for i, ref := range references {
		resolved[i] = Resolve(directory, ref)
	}
	return resolved, nil
}
