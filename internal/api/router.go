package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/affirmly/affirmly-be/internal/api/handlers"
	"github.com/affirmly/affirmly-be/internal/auth"
	"github.com/affirmly/affirmly-be/internal/services"
	"github.com/affirmly/affirmly-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	authenticator *auth.Authenticator,
	hub *websocket.Hub,
	postService services.PostServiceProvider,
	userService services.UserServiceProvider,
	profileService services.ProfileServiceProvider,
	eventService services.EventServiceProvider,
	mediaDir string,
	allowedOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// Django-style trailing slashes: /posts/ and /posts are the same route.
	r.Use(middleware.StripSlashes)

	// CORS configuration for the frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	postHandler := handlers.NewPostHandler(postService)
	userHandler := handlers.NewUserHandler(userService, authenticator)
	profileHandler := handlers.NewProfileHandler(profileService)
	eventHandler := handlers.NewEventHandler(eventService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// Open endpoints: registration and login
	r.Post("/users/register", userHandler.Register)
	r.Post("/users/login", userHandler.Login)

	// Uploaded profile images
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(mediaDir))))

	// Everything else requires an authenticated caller
	r.Group(func(r chi.Router) {
		r.Use(authenticator.Middleware())

		r.Get("/users/me", userHandler.GetMe)
		r.Get("/users/profile", profileHandler.Get)
		r.Put("/users/profile", profileHandler.Update)

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.GetAll)
			r.Post("/", postHandler.Create)
			r.Route("/detail/{id}", func(r chi.Router) {
				r.Get("/", postHandler.Get)
				r.Put("/", postHandler.Update)
				r.Patch("/", postHandler.Update)
				r.Delete("/", postHandler.Delete)
			})
			// Legacy delete route kept alongside the detail one
			r.Delete("/delete/{id}", postHandler.Delete)
		})

		r.Get("/activity", eventHandler.GetRecent)

		// Live feed over websocket
		r.Get("/ws/feed", wsHandler.Serve)
	})

	return r
}
