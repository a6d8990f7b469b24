package pin

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// MinCost нижняя граница стоимости bcrypt для хэша PIN.
const MinCost = 10

type Servicer interface {
	Has(ctx context.Context, userID string) (bool, error)
	Set(ctx context.Context, userID, pin string) error
	Verify(ctx context.Context, userID, pin string) error
}

type Service struct {
	repo Repository
	cost int
	log  *slog.Logger
}

func NewService(repo Repository, cost int, log *slog.Logger) *Service {
	if cost < MinCost {
		cost = MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}

	return &Service{
		repo: repo,
		cost: cost,
		log:  log.With("component", "pin_service"),
	}
}

func (s *Service) Has(ctx context.Context, userID string) (bool, error) {
	_, err := s.repo.GetHash(ctx, userID)
	if errors.Is(err, ErrNotSet) {
		return false, nil
	}
	if err != nil {
		s.log.Error("failed to check pin", "user_id", userID, "error", err)
		return false, fmt.Errorf("check pin: %w", err)
	}

	return true, nil
}

func (s *Service) Set(ctx context.Context, userID, pin string) error {
	if err := Validate(pin); err != nil {
		return err
	}

	set, err := s.Has(ctx, userID)
	if err != nil {
		return err
	}
	if set {
		return ErrAlreadySet
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), s.cost)
	if err != nil {
		return fmt.Errorf("hash pin: %w", err)
	}

	if err := s.repo.SetHash(ctx, userID, string(hash)); err != nil {
		if errors.Is(err, ErrAlreadySet) {
			return ErrAlreadySet
		}
		s.log.Error("failed to store pin", "user_id", userID, "error", err)
		return fmt.Errorf("store pin: %w", err)
	}

	s.log.Info("pin set", "user_id", userID)
	return nil
}

func (s *Service) Verify(ctx context.Context, userID, pin string) error {
	hash, err := s.repo.GetHash(ctx, userID)
	if errors.Is(err, ErrNotSet) {
		return ErrNotSet
	}
	if err != nil {
		s.log.Error("failed to load pin", "user_id", userID, "error", err)
		return fmt.Errorf("load pin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)); err != nil {
		s.log.Debug("pin mismatch", "user_id", userID)
		return ErrMismatch
	}

	return nil
}
