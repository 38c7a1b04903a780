package handlers

import (
	"net/http"

	"github.com/adrifdez/club-manager/middleware"
	"github.com/adrifdez/club-manager/models"
	"github.com/adrifdez/club-manager/services"
)

type EntrenamientoHandler struct {
	entrenamientoService services.EntrenamientoService
	asistenciaService    services.AsistenciaService
}

func NewEntrenamientoHandler(entrenamientoService services.EntrenamientoService, asistenciaService services.AsistenciaService) *EntrenamientoHandler {
	return &EntrenamientoHandler{
		entrenamientoService: entrenamientoService,
		asistenciaService:    asistenciaService,
	}
}

func (h *EntrenamientoHandler) Crear(w http.ResponseWriter, r *http.Request) {
	var input services.CrearEntrenamientoInput

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUsuarioID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}
	input.CreadoPor = currentUsuarioID

	entrenamiento, err := h.entrenamientoService.Crear(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"entrenamiento": entrenamiento,
	}

	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EntrenamientoHandler) Obtener(w http.ResponseWriter, r *http.Request) {
	entrenamientoID, err := idFromURL(r, "entrenamientoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entrenamiento, err := h.entrenamientoService.Obtener(r.Context(), entrenamientoID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	// El detalle incluye la convocatoria completa con el estado de cada
	// jugador.
	asistencias, err := h.asistenciaService.ListarPorEvento(r.Context(), models.EventoEntrenamiento, entrenamientoID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	entrenamiento.Asistencias = asistencias

	response := jsonResponse{
		"entrenamiento": entrenamiento,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EntrenamientoHandler) Listar(w http.ResponseWriter, r *http.Request) {
	filtro, err := filtroFromQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entrenamientos, err := h.entrenamientoService.Listar(r.Context(), filtro)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"entrenamientos": entrenamientos,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EntrenamientoHandler) Actualizar(w http.ResponseWriter, r *http.Request) {
	entrenamientoID, err := idFromURL(r, "entrenamientoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ActualizarEntrenamientoInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entrenamiento, err := h.entrenamientoService.Actualizar(r.Context(), entrenamientoID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"entrenamiento": entrenamiento,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EntrenamientoHandler) Eliminar(w http.ResponseWriter, r *http.Request) {
	entrenamientoID, err := idFromURL(r, "entrenamientoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.entrenamientoService.Eliminar(r.Context(), entrenamientoID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
