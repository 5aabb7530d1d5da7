package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"booking-api/internal/middleware"
)

// Routes wires the full HTTP surface.
func (h *Handler) Routes(origins []string, rl *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recover)
	r.Use(middleware.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         int((10 * time.Minute).Seconds()),
	}))
	r.Use(rl.Limit)

	r.Get("/", h.Home)
	r.Get("/generate-token", handle(h.GenerateToken))
	r.Get("/validate-token", handle(h.ValidateToken))
	r.Get("/check-phone/{phone}", handle(h.CheckPhone))
	r.Post("/submit-booking", handle(h.SubmitBooking))
	r.Post("/modify-appointment", handle(h.ModifyAppointment))
	r.Post("/cancel-appointment", handle(h.CancelAppointment))
	r.Get("/appointment/{phone}", handle(h.GetAppointment))
	r.Get("/confirmation", handle(h.Confirmation))

	return r
}
