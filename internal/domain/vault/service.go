package vault

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// IVSize длина IV AES-GCM, которую ожидает клиент.
const IVSize = 12

type Servicer interface {
	Create(ctx context.Context, ownerID, ciphertext, iv string) (string, error)
	Update(ctx context.Context, ownerID, id, ciphertext, iv string) error
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, ownerID string) ([]Record, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "vault_service"),
		now:  time.Now,
	}
}

func (s *Service) Create(ctx context.Context, ownerID, ciphertext, iv string) (string, error) {
	if err := validateSealed(ciphertext, iv); err != nil {
		return "", err
	}

	now := s.now().UTC()
	rec := &Record{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Ciphertext: ciphertext,
		IV:         iv,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		s.log.Error("failed to create vault item", "user_id", ownerID, "error", err)
		return "", fmt.Errorf("create vault item: %w", err)
	}

	s.log.Info("vault item created", "item_id", rec.ID, "user_id", ownerID)
	return rec.ID, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id, ciphertext, iv string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := validateSealed(ciphertext, iv); err != nil {
		return err
	}

	rec := &Record{
		ID:         id,
		OwnerID:    ownerID,
		Ciphertext: ciphertext,
		IV:         iv,
		UpdatedAt:  s.now().UTC(),
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("failed to update vault item", "item_id", id, "user_id", ownerID, "error", err)
		return fmt.Errorf("update vault item: %w", err)
	}

	s.log.Info("vault item updated", "item_id", id, "user_id", ownerID)
	return nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("failed to delete vault item", "item_id", id, "user_id", ownerID, "error", err)
		return fmt.Errorf("delete vault item: %w", err)
	}

	s.log.Info("vault item deleted", "item_id", id, "user_id", ownerID)
	return nil
}

func (s *Service) List(ctx context.Context, ownerID string) ([]Record, error) {
	records, err := s.repo.List(ctx, ownerID)
	if err != nil {
		s.log.Error("failed to list vault items", "user_id", ownerID, "error", err)
		return nil, fmt.Errorf("list vault items: %w", err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return records, nil
}

// validateSealed проверяет только форму: расшифровать запись сервер не может.
func validateSealed(ciphertext, iv string) error {
	if ciphertext == "" || iv == "" {
		return fmt.Errorf("%w: ciphertext and iv are required", ErrInvalidData)
	}

	if _, err := base64.StdEncoding.DecodeString(ciphertext); err != nil {
		return fmt.Errorf("%w: ciphertext is not base64", ErrInvalidData)
	}

	raw, err := base64.StdEncoding.DecodeString(iv)
	if err != nil {
		return fmt.Errorf("%w: iv is not base64", ErrInvalidData)
	}
	if len(raw) != IVSize {
		return fmt.Errorf("%w: iv must be %d bytes", ErrInvalidData, IVSize)
	}

	return nil
}

// Неизвестный формат идентификатора неотличим от отсутствующей записи.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	return nil
}
