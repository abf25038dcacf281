package service

import (
	"context"
	"errors"
	"strings"

	noteserrors "futsal/internal/notes/errors"
	"futsal/internal/notes/repository"
	"futsal/internal/notes/validator"
	"futsal/pkg/config"
	apperrors "futsal/pkg/errors"
	"futsal/pkg/logger"
	"futsal/pkg/model"
	"futsal/pkg/validation"
)

type NoteService interface {
	Set(ctx context.Context, ownerID, content string) (*model.Note, error)
	GetByOwner(ctx context.Context, ownerID string) ([]*model.Note, error)
}

type noteService struct {
	repo      repository.NoteRepository
	validator *validator.NoteValidator
	log       *logger.Logger
}

func NewNoteService(repo repository.NoteRepository, validator *validator.NoteValidator, cfg *config.Config) NoteService {
	return &noteService{
		repo:      repo,
		validator: validator,
		log:       cfg.Log,
	}
}

// Set replaces the owner's note, creating it on first use.
func (s *noteService) Set(ctx context.Context, ownerID, content string) (*model.Note, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" || strings.TrimSpace(content) == "" {
		return nil, apperrors.InvalidInput("Content and idLapanganChange are required")
	}

	if err := s.validator.Validate(&model.Note{OwnerID: ownerID, Content: content}); err != nil {
		s.log.Warn("Note validation failed", "error", err)
		return nil, validation.ToAppError("Note validation failed", err)
	}

	note, err := s.repo.UpdateContent(ctx, ownerID, content)
	if err == nil {
		s.log.Info("Note updated", "owner_id", ownerID)
		return note, nil
	}
	if !errors.Is(err, noteserrors.ErrNotFound) {
		s.log.Error("Failed to update note", "error", err, "owner_id", ownerID)
		return nil, apperrors.Internal("Failed to save information", err)
	}

	note = &model.Note{OwnerID: ownerID, Content: content}
	if err := s.repo.Create(ctx, note); err != nil {
		if !errors.Is(err, noteserrors.ErrDuplicate) {
			s.log.Error("Failed to create note", "error", err, "owner_id", ownerID)
			return nil, apperrors.Internal("Failed to save information", err)
		}
		// Lost a race with a concurrent first write.
		note, err = s.repo.UpdateContent(ctx, ownerID, content)
		if err != nil {
			s.log.Error("Failed to update note", "error", err, "owner_id", ownerID)
			return nil, apperrors.Internal("Failed to save information", err)
		}
	}

	s.log.Info("Note saved", "owner_id", ownerID, "id", note.ID)
	return note, nil
}

// GetByOwner returns the owner's note as a list of zero or one element.
func (s *noteService) GetByOwner(ctx context.Context, ownerID string) ([]*model.Note, error) {
	notes := make([]*model.Note, 0, 1)

	note, err := s.repo.FindByOwner(ctx, strings.TrimSpace(ownerID))
	if err != nil {
		if errors.Is(err, noteserrors.ErrNotFound) {
			return notes, nil
		}
		s.log.Error("Failed to retrieve note", "error", err, "owner_id", ownerID)
		return nil, apperrors.Internal("Failed to retrieve information", err)
	}
	return append(notes, note), nil
}
