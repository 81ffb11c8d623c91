package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"

	"github.com/smartcram/smartcram-api/generation"
	"github.com/smartcram/smartcram-api/middleware"
	"github.com/smartcram/smartcram-api/models"
	"github.com/smartcram/smartcram-api/transfer"
)

// persistSet stores a validated aggregate as one transaction: parent and
// every card commit together or not at all.
func (h *DBHandler) persistSet(userID uint, agg *generation.FlashcardSet) (*models.FlashcardSet, error) {
	publicID, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	set := models.FlashcardSet{
		Topic:       agg.Topic,
		Description: agg.Description,
		PublicID:    publicID,
		UserID:      userID,
	}
	for _, card := range agg.Cards {
		set.Flashcards = append(set.Flashcards, models.Flashcard{
			Question: card.Question,
			Answer:   card.Answer,
		})
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&set).Error
	})
	if err != nil {
		return nil, err
	}
	return &set, nil
}

// findSet loads an owner-scoped set with its cards in creation order.
func (h *DBHandler) findSet(publicID string, userID uint) (*models.FlashcardSet, error) {
	var set models.FlashcardSet
	err := h.DB.
		Where("public_id = ? AND user_id = ?", publicID, userID).
		Preload("Flashcards", func(db *gorm.DB) *gorm.DB { return db.Order("flashcards.id") }).
		First(&set).Error
	if err != nil {
		return nil, err
	}
	return &set, nil
}

// POST /api/flashcards/generate
func (h *DBHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Topic       string `json:"topic"`
		SourceText  string `json:"source_text"`
		NumCards    int    `json:"num_cards"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.NumCards == 0 {
		req.NumCards = 8
	}

	ctx, cancel := h.genContext(r)
	defer cancel()

	agg, err := h.Gen.GenerateFlashcards(ctx, req.Topic, req.SourceText, req.NumCards, req.Description)
	if err != nil {
		h.writeError(w, err)
		return
	}

	set, err := h.persistSet(user.ID, agg)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.Log.Infow("flashcard set generated", "public_id", set.PublicID, "topic", set.Topic, "cards", len(set.Flashcards))
	writeJSON(w, http.StatusCreated, set)
}

// GET /api/flashcards
func (h *DBHandler) ListFlashcardSets(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	skip, limit := pagination(r)

	var sets []models.FlashcardSet
	err := h.DB.
		Where("user_id = ?", user.ID).
		Order("flashcard_sets.id").
		Offset(skip).Limit(limit).
		Preload("Flashcards", func(db *gorm.DB) *gorm.DB { return db.Order("flashcards.id") }).
		Find(&sets).Error
	if err != nil {
		h.writeError(w, err)
		return
	}

	if sets == nil {
		sets = []models.FlashcardSet{}
	}
	writeJSON(w, http.StatusOK, sets)
}

// GET /api/flashcards/{setID}
func (h *DBHandler) GetFlashcardSet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	set, err := h.findSet(r.PathValue("setID"), user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// PUT /api/flashcards/{setID}
func (h *DBHandler) UpdateFlashcardSet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	set, err := h.findSet(r.PathValue("setID"), user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	// Only metadata is mutable; cards are immutable once created.
	var req struct {
		Topic       *string `json:"topic"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Topic != nil {
		if *req.Topic == "" {
			http.Error(w, "Topic must not be empty", http.StatusBadRequest)
			return
		}
		set.Topic = *req.Topic
	}
	if req.Description != nil {
		set.Description = *req.Description
	}

	if err := h.DB.Save(set).Error; err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// DELETE /api/flashcards/{setID}
func (h *DBHandler) DeleteFlashcardSet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	set, err := h.findSet(r.PathValue("setID"), user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("set_id = ?", set.ID).Delete(&models.Flashcard{}).Error; err != nil {
			return err
		}
		return tx.Delete(set).Error
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /api/flashcards/{setID}/export
func (h *DBHandler) ExportFlashcardSet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	set, err := h.findSet(r.PathValue("setID"), user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transfer.ExportSet(set))
}

// POST /api/flashcards/import
func (h *DBHandler) ImportFlashcardSet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Error reading request body", http.StatusBadRequest)
		return
	}

	h.importSetDocument(w, user.ID, body)
}

// importSetDocument validates and persists a flashcard-set document. Shared
// by the typed import endpoint and the auto-detecting one.
func (h *DBHandler) importSetDocument(w http.ResponseWriter, userID uint, body []byte) {
	agg, err := transfer.ImportSet(body)
	if err != nil {
		h.writeError(w, err)
		return
	}

	set, err := h.persistSet(userID, agg)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.Log.Infow("flashcard set imported", "public_id", set.PublicID, "cards", len(set.Flashcards))
	writeJSON(w, http.StatusCreated, set)
}
