package routes

import (
	"log/slog"
	"net/http"

	_ "github.com/Dosada05/football-standings/docs"
	"github.com/Dosada05/football-standings/handlers"
	"github.com/Dosada05/football-standings/middleware"
	"github.com/Dosada05/football-standings/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	Logger         *slog.Logger
}

func SetupRoutes(
	router chi.Router,
	opts Options,
	tournamentHandler *handlers.TournamentHandler,
	standingsHandler *handlers.StandingsHandler,
	webSocketHandler *handlers.WebSocketHandler,
	healthHandler *handlers.HealthHandler,
	mcpHandler http.Handler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Mcp-Session-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(opts.JWTSecret, opts.Logger)
	organizerOnly := middleware.Authorize(models.RoleAdmin, models.RoleOrganizer)

	router.Get("/healthz", healthHandler.Healthz)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Get("/phases/classify", standingsHandler.ClassifyPhase)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", tournamentHandler.GetByIDHandler)
			r.Get("/standings", standingsHandler.GetStandings)
			r.Get("/phases", standingsHandler.ListPhases)

			// Изменения только для организаторов и админов
			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Use(organizerOnly)

				r.Post("/standings/publish", standingsHandler.PublishStandings)
				r.Post("/standings/export", standingsHandler.ExportStandings)
				r.Put("/teams/{teamID}/standing", standingsHandler.RecordTeamStanding)
			})
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	// MCP-инструменты для ассистентов, только с токеном.
	if mcpHandler != nil {
		router.With(authenticate).Handle("/mcp", mcpHandler)
	}
}
