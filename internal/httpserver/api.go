package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"shuttersbysenators.com/web/internal/contact"
	mw "shuttersbysenators.com/web/internal/middleware"
	"shuttersbysenators.com/web/internal/observability"
)

const maxAPIBody = 64 << 10

type apiError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type apiSubmission struct {
	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// apiContact accepts a JSON contact form from other origins.
func (a *app) apiContact(w http.ResponseWriter, r *http.Request) {
	var form contact.ContactForm
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAPIBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&form); err != nil {
		mw.WriteJSON(w, http.StatusBadRequest, apiError{Error: "invalid JSON body"})
		return
	}
	sub, err := a.submitter.SubmitContact(r.Context(), form)
	var verr *contact.ValidationError
	switch {
	case errors.As(err, &verr):
		mw.WriteJSON(w, http.StatusUnprocessableEntity, apiError{Error: "validation failed", Fields: verr.Fields})
	case err != nil:
		observability.FromContext(r.Context()).Error("api contact submit", zap.Error(err))
		mw.WriteJSON(w, http.StatusInternalServerError, apiError{Error: "internal error"})
	default:
		mw.WriteJSON(w, http.StatusCreated, apiSubmission{ID: sub.ID, SubmittedAt: sub.SubmittedAt})
	}
}
