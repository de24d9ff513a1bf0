package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhinay-x/note-maker/domain"
)

// NoteRepositoryImpl implements domain.NoteRepository using GORM
type NoteRepositoryImpl struct {
	db *gorm.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *gorm.DB) domain.NoteRepository {
	return &NoteRepositoryImpl{db: db}
}

// Create implements domain.NoteRepository
func (r *NoteRepositoryImpl) Create(ctx context.Context, note *domain.Note) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	row := r.domainToDB(note)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	note.CreatedAt = row.CreatedAt
	note.UpdatedAt = row.UpdatedAt
	return nil
}

// FindByID implements domain.NoteRepository
func (r *NoteRepositoryImpl) FindByID(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	var row DBNote
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", noteID, userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&row), nil
}

// List implements domain.NoteRepository. Search is a case-insensitive
// substring match on title or content; a note matches the tag filter when it
// carries any of the given tags.
func (r *NoteRepositoryImpl) List(ctx context.Context, userID string, query domain.NoteQuery) ([]*domain.Note, int64, error) {
	filter := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("user_id = ?", userID)
		if s := strings.TrimSpace(query.Search); s != "" {
			pattern := "%" + strings.ToLower(s) + "%"
			tx = tx.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
		}
		if len(query.Tags) > 0 {
			tags := r.db.Session(&gorm.Session{NewDB: true})
			for i, tag := range query.Tags {
				quoted, _ := json.Marshal(tag)
				cond := "%" + string(quoted) + "%"
				if i == 0 {
					tags = tags.Where("tags LIKE ?", cond)
				} else {
					tags = tags.Or("tags LIKE ?", cond)
				}
			}
			tx = tx.Where(tags)
		}
		return tx
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&DBNote{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []DBNote
	offset := (query.Page - 1) * query.Limit
	err := r.db.WithContext(ctx).Scopes(filter).
		Order("created_at DESC").Order("id").
		Offset(offset).Limit(query.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	notes := make([]*domain.Note, 0, len(rows))
	for i := range rows {
		notes = append(notes, r.dbToDomain(&rows[i]))
	}
	return notes, total, nil
}

// Update implements domain.NoteRepository
func (r *NoteRepositoryImpl) Update(ctx context.Context, note *domain.Note) error {
	res := r.db.WithContext(ctx).Model(&DBNote{}).
		Where("id = ? AND user_id = ?", note.ID, note.UserID).
		Select("title", "content", "tags").
		Updates(&DBNote{Title: note.Title, Content: note.Content, Tags: note.Tags})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

// Delete implements domain.NoteRepository
func (r *NoteRepositoryImpl) Delete(ctx context.Context, userID, noteID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", noteID, userID).Delete(&DBNote{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepositoryImpl) domainToDB(note *domain.Note) *DBNote {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	return &DBNote{
		ID:        note.ID,
		UserID:    note.UserID,
		Title:     note.Title,
		Content:   note.Content,
		Tags:      tags,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func (r *NoteRepositoryImpl) dbToDomain(row *DBNote) *domain.Note {
	tags := row.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Note{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		Content:   row.Content,
		Tags:      tags,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
