package routes

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/katsunaka/court-booking/handlers"
	"github.com/katsunaka/court-booking/middleware"
)

//go:embed openapi.json
var openapiDoc []byte

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	sessions middleware.SessionChecker,
	authHandler *handlers.AuthHandler,
	bookingHandler *handlers.BookingHandler,
	participantHandler *handlers.ParticipantHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"up"}`))
	})

	router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(openapiDoc)
	})
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Post("/auth/login", authHandler.Login)

	// Everything below needs a valid token plus the session flag still set.
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(jwtSecret), sessions))

		r.Post("/auth/logout", authHandler.Logout)

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", bookingHandler.ListHandler)
			r.Post("/", bookingHandler.CreateHandler)
			r.Get("/{bookingID}", bookingHandler.GetByIDHandler)
			r.Delete("/{bookingID}", bookingHandler.DeleteHandler)

			r.Post("/{bookingID}/participants", participantHandler.AddHandler)
			r.Delete("/{bookingID}/participants/{name}", participantHandler.RemoveHandler)
		})

		r.Get("/ws", webSocketHandler.ServeWs)
	})
}
