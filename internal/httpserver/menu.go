package httpserver

import (
	"encoding/json"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"shuttersbysenators.com/web/internal/content"
	mw "shuttersbysenators.com/web/internal/middleware"
	"shuttersbysenators.com/web/internal/nav"
	"shuttersbysenators.com/web/internal/observability"
	"shuttersbysenators.com/web/internal/routing"
	"shuttersbysenators.com/web/internal/views"
)

// scrollLockEvent is the HX-Trigger event the client mirrors onto <body>.
const scrollLockEvent = "scroll-lock"

func (a *app) menuToggle(w http.ResponseWriter, r *http.Request) {
	a.menuTransition(w, r, (*nav.Controller).Toggle)
}

func (a *app) menuClose(w http.ResponseWriter, r *http.Request) {
	a.menuTransition(w, r, (*nav.Controller).Dismiss)
}

// menuTransition restores the controller from the session, applies event and
// answers with the re-rendered header plus the resulting scroll-lock state.
func (a *app) menuTransition(w http.ResponseWriter, r *http.Request, event func(*nav.Controller)) {
	sess := mw.GetSession(r)
	st := sess.Nav
	if p := currentPath(r); p != "" {
		st.Path = p
	}

	ctrl := nav.NewController(st, &nav.LockFlag{})
	defer ctrl.Close()
	logger := observability.FromContext(r.Context())
	ctrl.Subscribe(func(s nav.State) {
		logger.Debug("menu transition", zap.String("path", s.Path), zap.String("menu", string(s.Menu)))
	})
	event(ctrl)
	sess.SetNav(ctrl.State())

	payload := map[string]any{
		scrollLockEvent: map[string]bool{"locked": ctrl.ScrollLocked()},
	}
	if raw, err := json.Marshal(payload); err == nil {
		w.Header().Set("HX-Trigger", string(raw))
	}
	a.renderFragment(w, r, http.StatusOK, "header", views.BuildHeader(content.Studio().Name, ctrl.State(), sess.CSRFToken))
}

// currentPath reads the page path htmx reports in HX-Current-URL.
func currentPath(r *http.Request) string {
	raw := r.Header.Get("HX-Current-URL")
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return ""
	}
	return routing.Normalize(u.Path)
}
