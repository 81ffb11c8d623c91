package handlers

import (
	"io"
	"net/http"

	"github.com/smartcram/smartcram-api/middleware"
	"github.com/smartcram/smartcram-api/transfer"
)

// POST /api/import
//
// ImportDocument accepts either transfer document shape, detects which one
// the payload carries, and persists it under the caller's account.
func (h *DBHandler) ImportDocument(w http.ResponseWriter, r *http.Request) {
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

	kind, err := transfer.Detect(body)
	if err != nil {
		h.writeError(w, err)
		return
	}

	switch kind {
	case transfer.KindFlashcardSet:
		h.importSetDocument(w, user.ID, body)
	case transfer.KindQuiz:
		h.importQuizDocument(w, user.ID, body)
	}
}
