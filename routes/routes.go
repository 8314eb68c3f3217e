package routes

import (
	"github.com/courtmix/americano-system/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	formatHandler *handlers.FormatHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Route("/formats", func(r chi.Router) {
		r.Get("/", formatHandler.ListFormatsHandler)
		r.Get("/validate", formatHandler.ValidateHandler)
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)
		r.Post("/", tournamentHandler.CreateHandler)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", tournamentHandler.GetHandler)
			r.Delete("/", tournamentHandler.DeleteHandler)
			r.Put("/status", tournamentHandler.UpdateStatusHandler)
			r.Get("/schedule", tournamentHandler.ScheduleHandler)
			r.Get("/standings", tournamentHandler.StandingsHandler)
			r.Get("/partnerships", tournamentHandler.PartnershipsHandler)

			r.Get("/scores", matchHandler.ListScoresHandler)
			r.Route("/scores/{fixtureIndex}", func(r chi.Router) {
				r.Put("/", matchHandler.SubmitScoreHandler)
				r.Delete("/", matchHandler.ResetScoreHandler)
			})
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
