package handlers

import (
	"context"
	"net/http"
	"time"

	"goodVibes/internal/logger"
	"goodVibes/internal/middleware"
	"goodVibes/internal/models"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	svc Services
	loc *time.Location
	now func() time.Time
}

// NewHandler: loc - часовой пояс, в котором разбираются даты из запросов.
func NewHandler(svc Services, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		svc: svc,
		loc: loc,
		now: time.Now,
	}
}

// Register подключает маршруты. authenticate защищает всё под /api, кроме /api/token.
func (h *Handler) Register(r chi.Router, authenticate func(http.Handler) http.Handler) {
	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Post("/token", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/users/me", h.Me)
			r.Post("/logout", h.Logout)

			r.Route("/todos", func(r chi.Router) {
				r.Get("/", h.ListTodos)   // GET /api/todos
				r.Post("/", h.CreateTodo) // POST /api/todos
				r.Post("/from-template/{templateId}", h.CreateFromTemplate)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.GetTodo)       // GET /api/todos/{id}
					r.Put("/", h.UpdateTodo)    // PUT /api/todos/{id}
					r.Delete("/", h.DeleteTodo) // DELETE /api/todos/{id}
				})
			})
			r.Get("/today", h.Today)

			r.Route("/calendars", func(r chi.Router) {
				r.Get("/", h.ListCalendars)
				r.Post("/", h.CreateCalendar)
				r.Put("/{id}", h.UpdateCalendar)
				r.Delete("/{id}", h.DeleteCalendar)
			})
			r.Get("/templates", h.ListTemplates)

			r.Get("/week", h.Week)
			r.Get("/analytics", h.Analytics)
			r.Get("/export.ics", h.ExportICS)
			r.Post("/migrate", h.Import)

			r.Route("/interactions", func(r chi.Router) {
				r.Post("/", h.OpenSession)
				r.Post("/{id}/events", h.SessionEvent)
				r.Post("/{id}/navigate", h.NavigateSession)
				r.Delete("/{id}", h.CloseSession)
			})
		})
	})
}

// currentUser достаёт пользователя, положенного middleware авторизации.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		logger.Warn("HTTP: Запрос без пользователя",
			zap.String("path", r.URL.Path),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnauthorized, "требуется авторизация")
		return nil, false
	}
	return user, true
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.svc.Health == nil {
		responseWithJSON(w, http.StatusOK, toPayload("status", "ok"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.svc.Health.HealthCheck(ctx); err != nil {
		logger.Error("HTTP: Хранилище недоступно", err)
		responseWithJSON(w, http.StatusServiceUnavailable,
			toPayload("status", "unavailable"),
			toPayload("error", err.Error()))
		return
	}
	responseWithJSON(w, http.StatusOK, toPayload("status", "ok"))
}
