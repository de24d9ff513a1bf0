package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhinay-x/note-maker/domain"
	"github.com/abhinay-x/note-maker/internal/clock"
)

const (
	defaultNoteLimit = 10
	maxNoteLimit     = 100
	// keeps the offset well inside int range
	maxNotePage = 1_000_000
)

// NoteServiceImpl implements domain.NoteService
type NoteServiceImpl struct {
	noteRepo domain.NoteRepository
	clock    clock.Clock
}

// NewNoteService creates a new note service
func NewNoteService(noteRepo domain.NoteRepository, clk clock.Clock) domain.NoteService {
	return &NoteServiceImpl{noteRepo: noteRepo, clock: clk}
}

// List implements domain.NoteService
func (s *NoteServiceImpl) List(ctx context.Context, userID string, query domain.NoteQuery) (*domain.NotePage, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Page > maxNotePage {
		query.Page = maxNotePage
	}
	if query.Limit < 1 {
		query.Limit = defaultNoteLimit
	}
	if query.Limit > maxNoteLimit {
		query.Limit = maxNoteLimit
	}
	query.Search = strings.TrimSpace(query.Search)
	query.Tags = cleanTags(query.Tags)

	notes, total, err := s.noteRepo.List(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	pages := int((total + int64(query.Limit) - 1) / int64(query.Limit))
	return &domain.NotePage{
		Notes:      notes,
		Page:       query.Page,
		Limit:      query.Limit,
		Total:      total,
		TotalPages: pages,
	}, nil
}

// Get implements domain.NoteService
func (s *NoteServiceImpl) Get(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	return s.noteRepo.FindByID(ctx, userID, noteID)
}

// Create implements domain.NoteService
func (s *NoteServiceImpl) Create(ctx context.Context, userID string, input domain.NoteInput) (*domain.Note, error) {
	now := s.clock.Now()
	note := &domain.Note{
		UserID:    userID,
		Title:     strings.TrimSpace(input.Title),
		Content:   input.Content,
		Tags:      cleanTags(input.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

// Update implements domain.NoteService
func (s *NoteServiceImpl) Update(ctx context.Context, userID, noteID string, input domain.NoteInput) (*domain.Note, error) {
	note := &domain.Note{
		ID:      noteID,
		UserID:  userID,
		Title:   strings.TrimSpace(input.Title),
		Content: input.Content,
		Tags:    cleanTags(input.Tags),
	}
	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}
	return s.noteRepo.FindByID(ctx, userID, noteID)
}

// Delete implements domain.NoteService
func (s *NoteServiceImpl) Delete(ctx context.Context, userID, noteID string) error {
	return s.noteRepo.Delete(ctx, userID, noteID)
}

// cleanTags trims tags and drops empties and duplicates, keeping order.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
