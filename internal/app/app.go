package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/glabrego/pagerdeck/internal/positions"
	"github.com/glabrego/pagerdeck/internal/storage"
)

type Repository interface {
	SaveBundle(ctx context.Context, key string, data []byte) (string, error)
	LoadBundle(ctx context.Context, key string) (storage.Bundle, bool, error)
	DeleteBundle(ctx context.Context, key string) error
}

// Service is the host side of the screen's save/restore contract.
type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, log: log}
}

// SnapshotInfo describes the stored snapshot.
type SnapshotInfo struct {
	Present  bool
	Valid    bool
	Revision string
	SavedAt  time.Time
	Pages    map[int]int
}

// RestorePositions returns the saved selections and the revision they came
// from. A missing or malformed snapshot restores as an empty map with no
// revision.
func (s *Service) RestorePositions(ctx context.Context) (map[int]int, string, error) {
	info, err := s.DescribeSnapshot(ctx)
	if err != nil {
		return nil, "", err
	}
	switch {
	case !info.Present:
		s.log.Debug("No saved positions")
		return map[int]int{}, "", nil
	case !info.Valid:
		s.log.Warn("Saved positions have unexpected shape, starting empty", zap.String("revision", info.Revision))
		return map[int]int{}, "", nil
	}
	s.log.Info("Positions restored", zap.String("revision", info.Revision), zap.Int("galleries", len(info.Pages)))
	return info.Pages, info.Revision, nil
}

func (s *Service) SavePositions(ctx context.Context, pages map[int]int) (string, error) {
	data, err := positions.Encode(pages)
	if err != nil {
		return "", err
	}
	revision, err := s.repo.SaveBundle(ctx, positions.BundleKey, data)
	if err != nil {
		return "", fmt.Errorf("save positions snapshot: %w", err)
	}
	s.log.Debug("Positions saved", zap.String("revision", revision), zap.Int("galleries", len(pages)))
	return revision, nil
}

func (s *Service) ClearPositions(ctx context.Context) error {
	if err := s.repo.DeleteBundle(ctx, positions.BundleKey); err != nil {
		return fmt.Errorf("clear positions snapshot: %w", err)
	}
	return nil
}

func (s *Service) DescribeSnapshot(ctx context.Context) (SnapshotInfo, error) {
	b, ok, err := s.repo.LoadBundle(ctx, positions.BundleKey)
	if err != nil {
		return SnapshotInfo{}, fmt.Errorf("load positions snapshot: %w", err)
	}
	if !ok {
		return SnapshotInfo{}, nil
	}
	pages, valid := positions.Decode(b.Data)
	return SnapshotInfo{
		Present:  true,
		Valid:    valid,
		Revision: b.Revision,
		SavedAt:  b.SavedAt,
		Pages:    pages,
	}, nil
}
