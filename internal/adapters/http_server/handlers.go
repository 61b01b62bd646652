package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"staywise/internal/app"
	"staywise/internal/domain"
)

type Handlers struct {
	Auth     *app.AuthService
	Catalog  *app.CatalogService
	Bookings *app.BookingService
	Recs     *app.Recommender
	Validate *validator.Validate
	LoginRPS int
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	if h.Validate == nil {
		h.Validate = validator.New()
	}
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Use(Session(h.Auth))

		r.Group(func(r chi.Router) {
			r.Use(RateLimit(h.LoginRPS))
			r.Post("/auth/signup", h.signup)
			r.Post("/auth/login", h.login)
		})
		r.Post("/auth/logout", h.logout)
		r.Get("/auth/session", h.session)

		r.Get("/hotels", h.listHotels)
		r.Get("/hotels/search", h.searchHotels)
		r.Get("/hotels/{id}", h.getHotel)
		r.Get("/locations", h.listLocations)

		r.Post("/bookings", RequireAuth(h.createBooking))
		r.Get("/bookings", RequireAuth(h.listUpcoming))
		r.Get("/bookings/history", RequireAuth(h.listHistory))
		r.Delete("/bookings/{id}", RequireAuth(h.cancelBooking))

		r.Patch("/me/preferences", RequireAuth(h.updatePreferences))
		r.Get("/recommendations", RequireAuth(h.recommendations))
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func (h *Handlers) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return h.Validate.Struct(dst)
}

// ---- auth ----

func (h *Handlers) signup(w http.ResponseWriter, r *http.Request) {
	var in app.SignupInput
	if err := h.decode(r, &in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
		return
	}
	u, token, err := h.Auth.Signup(r.Context(), in)
	if errors.Is(err, domain.ErrEmailTaken) {
		writeProblem(w, http.StatusConflict, "Conflict", "email already registered")
		return
	}
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	setSessionCookie(w, token, h.Auth.SessionTTL())
	writeJSON(w, http.StatusCreated, map[string]any{"user": u})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := h.decode(r, &in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
		return
	}
	u, token, err := h.Auth.Login(r.Context(), in.Email, in.Password)
	if errors.Is(err, domain.ErrUnauthorized) {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
		return
	}
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	setSessionCookie(w, token, h.Auth.SessionTTL())
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{"result": "signed out"})
}

func (h *Handlers) session(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(r.Context())
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "no active session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

// ---- catalog ----

// listHotels returns the full catalog plus, for signed-in users, the
// personalized "recommended for you" section. Recommendation failures
// degrade to an empty section, never an error response.
func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.Catalog.ListHotels(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	recommended := []domain.Hotel{}
	if u, ok := currentUser(r.Context()); ok {
		recs, err := h.Recs.Recommend(r.Context(), u.ID)
		if err != nil {
			log.Error().Err(err).Str("user_id", u.ID).Msg("recommendations failed")
		} else if recs != nil {
			recommended = recs
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": hotels, "recommended": recommended})
}

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	hotels, err := h.Catalog.Search(r.Context(), query)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if hotels == nil {
		hotels = []domain.Hotel{}
	}
	writeJSON(w, http.StatusOK, hotels)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Catalog.GetHotel(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

func (h *Handlers) listLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := h.Catalog.Locations(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"locations": locs})
}

// ---- bookings ----

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	u, _ := currentUser(r.Context())
	var in app.NewBookingInput
	if err := h.decode(r, &in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
		return
	}
	view, err := h.Bookings.Create(r.Context(), u.ID, in)
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return
	}
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *Handlers) listUpcoming(w http.ResponseWriter, r *http.Request) {
	u, _ := currentUser(r.Context())
	bs, err := h.Bookings.Upcoming(r.Context(), u.ID)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bs})
}

func (h *Handlers) listHistory(w http.ResponseWriter, r *http.Request) {
	u, _ := currentUser(r.Context())
	bs, err := h.Bookings.History(r.Context(), u.ID)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bs})
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	u, _ := currentUser(r.Context())
	err := h.Bookings.Cancel(r.Context(), u.ID, chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "booking not found")
	case errors.Is(err, domain.ErrForbidden):
		writeProblem(w, http.StatusForbidden, "Forbidden", "not your booking")
	case err != nil:
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	default:
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "booking cancelled"})
	}
}

// ---- preferences & recommendations ----

type preferencesRequest struct {
	Preferences domain.Preferences `json:"preferences"`
}

func (h *Handlers) updatePreferences(w http.ResponseWriter, r *http.Request) {
	u, _ := currentUser(r.Context())
	var in preferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "preferences are required")
		return
	}
	p, err := h.Auth.UpdatePreferences(r.Context(), u.ID, in.Preferences)
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "user not found")
		return
	}
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "preferences": p})
}

func (h *Handlers) recommendations(w http.ResponseWriter, r *http.Request) {
	u, _ := currentUser(r.Context())
	recs, err := h.Recs.Recommend(r.Context(), u.ID)
	if err != nil {
		// degrade to an empty list; browsing must not break
		log.Error().Err(err).Str("user_id", u.ID).Msg("recommendations failed")
		recs = nil
	}
	if recs == nil {
		recs = []domain.Hotel{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": recs})
}
