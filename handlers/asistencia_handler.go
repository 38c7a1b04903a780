package handlers

import (
	"net/http"

	"github.com/adrifdez/club-manager/middleware"
	"github.com/adrifdez/club-manager/models"
	"github.com/adrifdez/club-manager/services"
)

// AsistenciaHandler sirve las rutas de asistencia de un tipo de evento.
// Se monta dos veces, una bajo /entrenamientos y otra bajo /partidos,
// con el nombre del parámetro de ruta correspondiente.
type AsistenciaHandler struct {
	asistenciaService services.AsistenciaService
	jugadorService    services.JugadorService
	tipo              models.TipoEvento
	eventoParam       string
}

func NewAsistenciaEntrenamientoHandler(asistenciaService services.AsistenciaService, jugadorService services.JugadorService) *AsistenciaHandler {
	return &AsistenciaHandler{
		asistenciaService: asistenciaService,
		jugadorService:    jugadorService,
		tipo:              models.EventoEntrenamiento,
		eventoParam:       "entrenamientoID",
	}
}

func NewAsistenciaPartidoHandler(asistenciaService services.AsistenciaService, jugadorService services.JugadorService) *AsistenciaHandler {
	return &AsistenciaHandler{
		asistenciaService: asistenciaService,
		jugadorService:    jugadorService,
		tipo:              models.EventoPartido,
		eventoParam:       "partidoID",
	}
}

type asistenciaBody struct {
	Estado           models.EstadoAsistencia `json:"estado"`
	MotivoAusenciaID *int                    `json:"motivo_ausencia_id,omitempty"`
	Comentario       *string                 `json:"comentario,omitempty"`
}

// Registrar es la respuesta del propio jugador autenticado. Repetirla
// sobreescribe la anterior.
func (h *AsistenciaHandler) Registrar(w http.ResponseWriter, r *http.Request) {
	eventoID, err := idFromURL(r, h.eventoParam)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUsuarioID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	jugador, err := h.jugadorService.ObtenerPorUsuario(r.Context(), currentUsuarioID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	var body asistenciaBody
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	asistencia, err := h.asistenciaService.Registrar(r.Context(), services.RegistrarAsistenciaInput{
		JugadorID:        jugador.ID,
		EventoID:         eventoID,
		Tipo:             h.tipo,
		Estado:           body.Estado,
		MotivoAusenciaID: body.MotivoAusenciaID,
		Comentario:       body.Comentario,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"asistencia": asistencia,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RegistrarComoGestor anota la respuesta de cualquier jugador. El gestor
// puede marcar no_asiste sin conocer todavía el motivo.
func (h *AsistenciaHandler) RegistrarComoGestor(w http.ResponseWriter, r *http.Request) {
	eventoID, err := idFromURL(r, h.eventoParam)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	jugadorID, err := idFromURL(r, "jugadorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var body asistenciaBody
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	asistencia, err := h.asistenciaService.Registrar(r.Context(), services.RegistrarAsistenciaInput{
		JugadorID:                 jugadorID,
		EventoID:                  eventoID,
		Tipo:                      h.tipo,
		Estado:                    body.Estado,
		MotivoAusenciaID:          body.MotivoAusenciaID,
		Comentario:                body.Comentario,
		PermitirAusenciaSinMotivo: true,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"asistencia": asistencia,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Listar devuelve todas las respuestas del evento, con jugador y motivo.
func (h *AsistenciaHandler) Listar(w http.ResponseWriter, r *http.Request) {
	eventoID, err := idFromURL(r, h.eventoParam)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	asistencias, err := h.asistenciaService.ListarPorEvento(r.Context(), h.tipo, eventoID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"asistencias": asistencias,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Mis devuelve los próximos eventos del jugador autenticado con su estado
// de respuesta, sembrando como pendiente los que aún no tengan fila.
func (h *AsistenciaHandler) Mis(w http.ResponseWriter, r *http.Request) {
	currentUsuarioID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	jugador, err := h.jugadorService.ObtenerPorUsuario(r.Context(), currentUsuarioID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	var eventos []services.EventoConAsistencia
	if h.tipo == models.EventoEntrenamiento {
		eventos, err = h.asistenciaService.MisEntrenamientos(r.Context(), jugador.ID)
	} else {
		eventos, err = h.asistenciaService.MisPartidos(r.Context(), jugador.ID)
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"eventos": eventos,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
