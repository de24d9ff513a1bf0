package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhinay-x/note-maker/domain"
	"github.com/abhinay-x/note-maker/internal/http/middleware"
)

// NoteHandlers handles the notes API. Every route runs behind the access
// token middleware.
type NoteHandlers struct {
	noteSvc domain.NoteService
}

// NewNoteHandlers creates new note handlers
func NewNoteHandlers(noteSvc domain.NoteService) *NoteHandlers {
	return &NoteHandlers{noteSvc: noteSvc}
}

// NoteRequest is the body of create and update
type NoteRequest struct {
	Title   string   `json:"title" binding:"required,max=255"`
	Content string   `json:"content" binding:"required,max=10000"`
	Tags    []string `json:"tags" binding:"max=10,dive,max=50"`
}

type noteView struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toNoteView(n *domain.Note) noteView {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return noteView{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      tags,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (r NoteRequest) input() domain.NoteInput {
	return domain.NoteInput{Title: r.Title, Content: r.Content, Tags: r.Tags}
}

// List returns a page of the caller's notes
func (h *NoteHandlers) List(c *gin.Context) {
	query := domain.NoteQuery{
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
		Search: c.Query("search"),
	}
	if tags := c.Query("tags"); tags != "" {
		query.Tags = strings.Split(tags, ",")
	}

	page, err := h.noteSvc.List(c.Request.Context(), middleware.CurrentUserID(c), query)
	if err != nil {
		respondError(c, err)
		return
	}

	notes := make([]noteView, 0, len(page.Notes))
	for _, n := range page.Notes {
		notes = append(notes, toNoteView(n))
	}
	respond(c, http.StatusOK, "", gin.H{
		"notes": notes,
		"pagination": gin.H{
			"page":       page.Page,
			"limit":      page.Limit,
			"total":      page.Total,
			"totalPages": page.TotalPages,
		},
	})
}

// Get returns one note
func (h *NoteHandlers) Get(c *gin.Context) {
	note, err := h.noteSvc.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"note": toNoteView(note)})
}

// Create adds a note
func (h *NoteHandlers) Create(c *gin.Context) {
	var req NoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := h.noteSvc.Create(c.Request.Context(), middleware.CurrentUserID(c), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Note created successfully", gin.H{"note": toNoteView(note)})
}

// Update replaces a note's title, content and tags
func (h *NoteHandlers) Update(c *gin.Context) {
	var req NoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := h.noteSvc.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Note updated successfully", gin.H{"note": toNoteView(note)})
}

// Delete removes a note
func (h *NoteHandlers) Delete(c *gin.Context) {
	if err := h.noteSvc.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Note deleted successfully", nil)
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return def
	}
	return v
}
