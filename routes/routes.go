package routes

import (
	"github.com/adrifdez/club-manager/handlers"
	"github.com/adrifdez/club-manager/middleware"
	"github.com/adrifdez/club-manager/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes monta el árbol de rutas del API. Todo lo que cuelga de /api
// exige token salvo register y login; las rutas de escritura sobre el
// calendario y la plantilla son sólo de gestor.
func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	corsOrigins []string,
	authHandler *handlers.AuthHandler,
	jugadorHandler *handlers.JugadorHandler,
	entrenamientoHandler *handlers.EntrenamientoHandler,
	partidoHandler *handlers.PartidoHandler,
	asistenciaEntrenamiento *handlers.AsistenciaHandler,
	asistenciaPartido *handlers.AsistenciaHandler,
	catalogoHandler *handlers.CatalogoHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	soloGestor := middleware.Authorize(models.RolGestor)

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Get("/profile", authHandler.Profile)

				r.With(soloGestor).Post("/registrar-jugador", authHandler.RegistrarJugador)
			})
		})

		r.Route("/jugadores", func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Get("/", jugadorHandler.Listar)
			r.Get("/{jugadorID}", jugadorHandler.Obtener)
			r.Put("/{jugadorID}", jugadorHandler.Actualizar)
			r.Put("/{jugadorID}/foto", jugadorHandler.SubirFoto)

			r.With(soloGestor).Patch("/{jugadorID}/estado", jugadorHandler.CambiarEstado)
		})

		r.Route("/entrenamientos", func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Get("/", entrenamientoHandler.Listar)
			r.Get("/mis", asistenciaEntrenamiento.Mis)
			r.Get("/{entrenamientoID}", entrenamientoHandler.Obtener)
			r.Post("/{entrenamientoID}/asistencia", asistenciaEntrenamiento.Registrar)

			r.Group(func(r chi.Router) {
				r.Use(soloGestor)

				r.Post("/", entrenamientoHandler.Crear)
				r.Put("/{entrenamientoID}", entrenamientoHandler.Actualizar)
				r.Delete("/{entrenamientoID}", entrenamientoHandler.Eliminar)
				r.Get("/{entrenamientoID}/asistencia", asistenciaEntrenamiento.Listar)
				r.Put("/{entrenamientoID}/asistencia/{jugadorID}", asistenciaEntrenamiento.RegistrarComoGestor)
			})
		})

		r.Route("/partidos", func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Get("/", partidoHandler.Listar)
			r.Get("/mis", asistenciaPartido.Mis)
			r.Get("/proximos", partidoHandler.Proximos)
			r.Get("/{partidoID}", partidoHandler.Obtener)
			r.Get("/{partidoID}/acta", partidoHandler.ObtenerActa)
			r.Post("/{partidoID}/asistencia", asistenciaPartido.Registrar)

			r.Group(func(r chi.Router) {
				r.Use(soloGestor)

				r.Post("/", partidoHandler.Crear)
				r.Put("/{partidoID}", partidoHandler.Actualizar)
				r.Delete("/{partidoID}", partidoHandler.Eliminar)
				r.Put("/{partidoID}/resultado", partidoHandler.ActualizarResultado)
				r.Post("/{partidoID}/finalizar", partidoHandler.Finalizar)
				r.Get("/{partidoID}/asistencia", asistenciaPartido.Listar)
				r.Put("/{partidoID}/asistencia/{jugadorID}", asistenciaPartido.RegistrarComoGestor)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Get("/posiciones", catalogoHandler.ListarPosiciones)
			r.Get("/motivos", catalogoHandler.ListarMotivos)
		})
	})

	router.Get("/ws/partidos/{partidoID}", webSocketHandler.ServeWs)
}
