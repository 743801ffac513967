// Package stubapi is an in-memory stand-in for the booking API and its
// frontend, used for dry runs and tests.
package stubapi

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const (
	dateLayout   = "2006-01-02"
	maxPageLimit = 100
)

type Server struct {
	Logger *zap.Logger
	Store  *Store
	Tokens *Tokens
}

func NewServer(l *zap.Logger, st *Store, tk *Tokens) *Server {
	if l == nil {
		l = zap.NewNop()
	}
	return &Server{Logger: l, Store: st, Tokens: tk}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(cors.AllowAll().Handler)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/booking", func(r chi.Router) {
		r.Get("/availability", s.handleAvailability)
		r.Post("/book", s.handleBook)
		r.Post("/waitlist", s.handleWaitlist)
		r.Post("/token", s.handleToken)

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(s.Tokens, RoleAdmin, RoleSuperadmin))
			r.Get("/admin/kpis", s.handleKPIs)
			r.Get("/admin/current", s.handleCurrent)
			r.Get("/admin/weekly", s.handleWeekly)
			r.Get("/admin/activity-logs", s.handleActivityLogs)
			r.Get("/admin/newsletter/recipients", s.handleRecipients)
		})
		r.With(RequireRole(s.Tokens, RoleSuperadmin)).Get("/superadmin/admins", s.handleAdmins)
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Debug("stub_request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
		)
	})
}

type errorBody struct {
	Detail string `json:"detail"`
}

func detail(msg string) errorBody { return errorBody{Detail: msg} }

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeJSON(w, http.StatusUnprocessableEntity, detail("query parameter date is required"))
		return
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detail("date must be YYYY-MM-DD"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":  date,
		"slots": s.Store.Availability(date),
	})
}

// missing names the empty required fields, in the order given.
func missing(fields ...[2]string) []string {
	var out []string
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			out = append(out, f[0])
		}
	}
	return out
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	var b Booking
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detail("invalid JSON body"))
		return
	}
	if m := missing(
		[2]string{"name", b.Name}, [2]string{"phone", b.Phone}, [2]string{"email", b.Email},
		[2]string{"date", b.Date}, [2]string{"time_slot", b.TimeSlot},
	); len(m) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, detail("missing fields: "+strings.Join(m, ", ")))
		return
	}
	if _, err := time.Parse(dateLayout, b.Date); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detail("date must be YYYY-MM-DD"))
		return
	}
	id, ok := s.Store.AddBooking(b)
	if !ok {
		writeJSON(w, http.StatusBadRequest, detail("time slot already booked"))
		return
	}
	s.Logger.Info("stub_booking_created", zap.Int("id", id), zap.String("date", b.Date))
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "message": "Booking confirmed"})
}

func (s *Server) handleWaitlist(w http.ResponseWriter, r *http.Request) {
	var e WaitlistEntry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detail("invalid JSON body"))
		return
	}
	if m := missing(
		[2]string{"name", e.Name}, [2]string{"email", e.Email}, [2]string{"preferred_date", e.PreferredDate},
	); len(m) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, detail("missing fields: "+strings.Join(m, ", ")))
		return
	}
	id := s.Store.AddWaitlist(e)
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "message": "Added to waitlist"})
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detail("invalid form body"))
		return
	}
	user := r.PostForm.Get("username")
	tok, ok := s.Tokens.Issue(user, r.PostForm.Get("password"))
	if !ok {
		s.Logger.Info("stub_login_rejected", zap.String("username", user))
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeJSON(w, http.StatusUnauthorized, detail("Incorrect username or password"))
		return
	}
	s.Store.Log("admin_login", user)
	writeJSON(w, http.StatusOK, map[string]string{"access_token": tok, "token_type": "bearer"})
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Store.KPIs(time.Now().UTC().Format(dateLayout)))
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	acct, _ := AccountFrom(r.Context())
	writeJSON(w, http.StatusOK, acct)
}

func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	start := time.Now().UTC().Truncate(24 * time.Hour)
	if q := r.URL.Query().Get("date"); q != "" {
		d, err := time.Parse(dateLayout, q)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, detail("date must be YYYY-MM-DD"))
			return
		}
		start = d
	}
	writeJSON(w, http.StatusOK, s.Store.Week(start))
}

func (s *Server) handleActivityLogs(w http.ResponseWriter, r *http.Request) {
	page, err1 := positiveInt(r.URL.Query().Get("page"), 1)
	limit, err2 := positiveInt(r.URL.Query().Get("limit"), 20)
	if err1 != nil || err2 != nil || limit > maxPageLimit || page > math.MaxInt/limit {
		writeJSON(w, http.StatusUnprocessableEntity, detail("page and limit must be positive integers, limit at most 100"))
		return
	}
	writeJSON(w, http.StatusOK, s.Store.Logs(page, limit))
}

func (s *Server) handleRecipients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, s.Store.Recipients(q.Get("city"), q.Get("name")))
}

func (s *Server) handleAdmins(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Tokens.Accounts())
}

func positiveInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
