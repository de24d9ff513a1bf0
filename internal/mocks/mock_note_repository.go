package mocks

import (
	"context"

	"github.com/abhinay-x/note-maker/domain"
)

// MockNoteRepository implements domain.NoteRepository interface for testing
type MockNoteRepository struct {
	CreateFunc   func(ctx context.Context, note *domain.Note) error
	FindByIDFunc func(ctx context.Context, userID, noteID string) (*domain.Note, error)
	ListFunc     func(ctx context.Context, userID string, query domain.NoteQuery) ([]*domain.Note, int64, error)
	UpdateFunc   func(ctx context.Context, note *domain.Note) error
	DeleteFunc   func(ctx context.Context, userID, noteID string) error
}

func NewMockNoteRepository() *MockNoteRepository {
	return &MockNoteRepository{}
}

func (m *MockNoteRepository) Create(ctx context.Context, note *domain.Note) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, note)
	}
	if note.ID == "" {
		note.ID = "note-1"
	}
	return nil
}

func (m *MockNoteRepository) FindByID(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, userID, noteID)
	}
	return nil, domain.ErrNoteNotFound
}

func (m *MockNoteRepository) List(ctx context.Context, userID string, query domain.NoteQuery) ([]*domain.Note, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, query)
	}
	return []*domain.Note{}, 0, nil
}

func (m *MockNoteRepository) Update(ctx context.Context, note *domain.Note) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, note)
	}
	return nil
}

func (m *MockNoteRepository) Delete(ctx context.Context, userID, noteID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, noteID)
	}
	return nil
}

var _ domain.NoteRepository = (*MockNoteRepository)(nil)
