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
	"github.com/smartcram/smartcram-api/scoring"
	"github.com/smartcram/smartcram-api/transfer"
)

// persistQuiz stores a validated aggregate as one transaction.
func (h *DBHandler) persistQuiz(userID uint, agg *generation.Quiz) (*models.Quiz, error) {
	publicID, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	quiz := models.Quiz{
		Topic:    agg.Topic,
		Title:    agg.Title,
		PublicID: publicID,
		UserID:   userID,
	}
	for _, q := range agg.Questions {
		quiz.Questions = append(quiz.Questions, models.QuizQuestion{
			Question:     q.Question,
			OptionA:      q.OptionA,
			OptionB:      q.OptionB,
			OptionC:      q.OptionC,
			OptionD:      q.OptionD,
			CorrectIndex: q.CorrectIndex,
		})
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&quiz).Error
	})
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// findQuiz loads an owner-scoped quiz with questions in creation order.
// Scoring is positional, so the order must be stable.
func (h *DBHandler) findQuiz(publicID string, userID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := h.DB.
		Where("public_id = ? AND user_id = ?", publicID, userID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("quiz_questions.id") }).
		First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// POST /api/quiz/generate
func (h *DBHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Topic        string `json:"topic"`
		SourceText   string `json:"source_text"`
		NumQuestions int    `json:"num_questions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.NumQuestions == 0 {
		req.NumQuestions = 5
	}

	ctx, cancel := h.genContext(r)
	defer cancel()

	agg, err := h.Gen.GenerateQuiz(ctx, req.Topic, req.SourceText, req.NumQuestions)
	if err != nil {
		h.writeError(w, err)
		return
	}

	quiz, err := h.persistQuiz(user.ID, agg)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.Log.Infow("quiz generated", "public_id", quiz.PublicID, "topic", quiz.Topic, "questions", len(quiz.Questions))
	writeJSON(w, http.StatusCreated, quiz)
}

// GET /api/quiz
func (h *DBHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	skip, limit := pagination(r)

	var quizzes []models.Quiz
	err := h.DB.
		Where("user_id = ?", user.ID).
		Order("quizzes.id").
		Offset(skip).Limit(limit).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("quiz_questions.id") }).
		Find(&quizzes).Error
	if err != nil {
		h.writeError(w, err)
		return
	}

	if quizzes == nil {
		quizzes = []models.Quiz{}
	}
	writeJSON(w, http.StatusOK, quizzes)
}

// GET /api/quiz/{quizID}
func (h *DBHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	quiz, err := h.findQuiz(r.PathValue("quizID"), user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

// POST /api/quiz/{quizID}/submit
func (h *DBHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	quiz, err := h.findQuiz(r.PathValue("quizID"), user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var req struct {
		Answers []int `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := scoring.Score(quiz.Questions, req.Answers)

	type submitResponse struct {
		QuizID string `json:"quiz_id"`
		scoring.Result
	}
	writeJSON(w, http.StatusOK, submitResponse{QuizID: quiz.PublicID, Result: result})
}

// PUT /api/quiz/{quizID}
func (h *DBHandler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	quiz, err := h.findQuiz(r.PathValue("quizID"), user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	// Only metadata is mutable; questions are immutable once created.
	var req struct {
		Topic *string `json:"topic"`
		Title *string `json:"title"`
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
		quiz.Topic = *req.Topic
	}
	if req.Title != nil {
		if *req.Title == "" {
			http.Error(w, "Title must not be empty", http.StatusBadRequest)
			return
		}
		quiz.Title = *req.Title
	}

	if err := h.DB.Save(quiz).Error; err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

// DELETE /api/quiz/{quizID}
func (h *DBHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	quiz, err := h.findQuiz(r.PathValue("quizID"), user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&models.QuizQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(quiz).Error
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /api/quiz/{quizID}/export
func (h *DBHandler) ExportQuiz(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	quiz, err := h.findQuiz(r.PathValue("quizID"), user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transfer.ExportQuiz(quiz))
}

// POST /api/quiz/import
func (h *DBHandler) ImportQuiz(w http.ResponseWriter, r *http.Request) {
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

	h.importQuizDocument(w, user.ID, body)
}

// importQuizDocument validates and persists a quiz document. Shared by the
// typed import endpoint and the auto-detecting one.
func (h *DBHandler) importQuizDocument(w http.ResponseWriter, userID uint, body []byte) {
	agg, err := transfer.ImportQuiz(body)
	if err != nil {
		h.writeError(w, err)
		return
	}

	quiz, err := h.persistQuiz(userID, agg)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.Log.Infow("quiz imported", "public_id", quiz.PublicID, "questions", len(quiz.Questions))
	writeJSON(w, http.StatusCreated, quiz)
}
