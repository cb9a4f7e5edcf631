package httpserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"shuttersbysenators.com/web/internal/contact"
	"shuttersbysenators.com/web/internal/content"
	mw "shuttersbysenators.com/web/internal/middleware"
	"shuttersbysenators.com/web/internal/observability"
	"shuttersbysenators.com/web/internal/views"
)

const (
	contactThanks = "Thank you! Your message has been sent."
	quoteThanks   = "Thanks! We will get back to you with a quote."
)

// contactSubmit handles POST /contact. htmx requests get the form fragment
// back; plain posts re-render the page on error and redirect on success.
func (a *app) contactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	form := contact.ContactForm{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Subject: r.PostFormValue("subject"),
		Message: r.PostFormValue("message"),
	}
	sub, err := a.submitter.SubmitContact(r.Context(), form)

	var verr *contact.ValidationError
	switch {
	case errors.As(err, &verr):
		view := views.FormView[contact.ContactForm]{Values: form.Normalize(), Errors: verr}
		if mw.IsHTMX(r.Context()) {
			view.Action = "/contact"
			view.CSRFToken = mw.CSRFToken(r)
			a.renderFragment(w, r, http.StatusUnprocessableEntity, "contact_form", view)
			return
		}
		a.renderContact(w, r, http.StatusUnprocessableEntity, view)
	case err != nil:
		a.renderError(w, r, err)
	default:
		observability.FromContext(r.Context()).Info("contact form accepted", zap.String("submission_id", sub.ID))
		if mw.IsHTMX(r.Context()) {
			view := views.FormView[contact.ContactForm]{Submitted: true, Action: "/contact", CSRFToken: mw.CSRFToken(r)}
			a.renderFragment(w, r, http.StatusOK, "contact_form", view)
			return
		}
		a.flashAndRedirect(w, r, contactThanks, "/contact")
	}
}

// quoteSubmit handles POST /galleries/{categoryId}/quote.
func (a *app) quoteSubmit(w http.ResponseWriter, r *http.Request) {
	g, ok := content.Gallery(chi.URLParam(r, "categoryId"))
	if !ok {
		a.notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	req := contact.QuoteRequest{
		Category: g.ID,
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Phone:    r.PostFormValue("phone"),
	}
	sub, err := a.submitter.SubmitQuote(r.Context(), req)

	action := views.GalleryHref(g.ID) + "/quote"
	var verr *contact.ValidationError
	switch {
	case errors.As(err, &verr):
		view := views.FormView[contact.QuoteRequest]{Values: req.Normalize(), Errors: verr}
		if mw.IsHTMX(r.Context()) {
			view.Action = action
			view.CSRFToken = mw.CSRFToken(r)
			a.renderFragment(w, r, http.StatusUnprocessableEntity, "quote_form", view)
			return
		}
		a.renderGalleryDetail(w, r, http.StatusUnprocessableEntity, g, view)
	case err != nil:
		a.renderError(w, r, err)
	default:
		observability.FromContext(r.Context()).Info("quote request accepted",
			zap.String("submission_id", sub.ID), zap.String("category", g.ID))
		if mw.IsHTMX(r.Context()) {
			view := views.FormView[contact.QuoteRequest]{
				Values:    contact.QuoteRequest{Category: g.ID},
				Submitted: true,
				Action:    action,
				CSRFToken: mw.CSRFToken(r),
			}
			a.renderFragment(w, r, http.StatusOK, "quote_form", view)
			return
		}
		a.flashAndRedirect(w, r, quoteThanks, views.GalleryHref(g.ID))
	}
}

func (a *app) flashAndRedirect(w http.ResponseWriter, r *http.Request, msg, to string) {
	sess := mw.GetSession(r)
	sess.Flash = msg
	sess.MarkDirty()
	http.Redirect(w, r, to, http.StatusSeeOther)
}
