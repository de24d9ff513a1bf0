package mocks

import (
	"context"

	"github.com/abhinay-x/note-maker/domain"
)

// MockNoteService implements domain.NoteService interface for testing
type MockNoteService struct {
	ListFunc   func(ctx context.Context, userID string, query domain.NoteQuery) (*domain.NotePage, error)
	GetFunc    func(ctx context.Context, userID, noteID string) (*domain.Note, error)
	CreateFunc func(ctx context.Context, userID string, input domain.NoteInput) (*domain.Note, error)
	UpdateFunc func(ctx context.Context, userID, noteID string, input domain.NoteInput) (*domain.Note, error)
	DeleteFunc func(ctx context.Context, userID, noteID string) error
}

func NewMockNoteService() *MockNoteService {
	return &MockNoteService{}
}

func (m *MockNoteService) List(ctx context.Context, userID string, query domain.NoteQuery) (*domain.NotePage, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, query)
	}
	return &domain.NotePage{Notes: []*domain.Note{}, Page: query.Page, Limit: query.Limit}, nil
}

func (m *MockNoteService) Get(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, noteID)
	}
	return nil, domain.ErrNoteNotFound
}

func (m *MockNoteService) Create(ctx context.Context, userID string, input domain.NoteInput) (*domain.Note, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, input)
	}
	return &domain.Note{ID: "note-1", UserID: userID, Title: input.Title, Content: input.Content, Tags: input.Tags}, nil
}

func (m *MockNoteService) Update(ctx context.Context, userID, noteID string, input domain.NoteInput) (*domain.Note, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, noteID, input)
	}
	return &domain.Note{ID: noteID, UserID: userID, Title: input.Title, Content: input.Content, Tags: input.Tags}, nil
}

func (m *MockNoteService) Delete(ctx context.Context, userID, noteID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, noteID)
	}
	return nil
}

var _ domain.NoteService = (*MockNoteService)(nil)
