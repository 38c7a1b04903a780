package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/adrifdez/club-manager/middleware"
	"github.com/adrifdez/club-manager/models"
	"github.com/adrifdez/club-manager/services"
)

type PartidoHandler struct {
	partidoService      services.PartidoService
	estadisticasService services.EstadisticasService
	asistenciaService   services.AsistenciaService
}

func NewPartidoHandler(partidoService services.PartidoService, estadisticasService services.EstadisticasService, asistenciaService services.AsistenciaService) *PartidoHandler {
	return &PartidoHandler{
		partidoService:      partidoService,
		estadisticasService: estadisticasService,
		asistenciaService:   asistenciaService,
	}
}

func (h *PartidoHandler) Crear(w http.ResponseWriter, r *http.Request) {
	var input services.CrearPartidoInput

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

	partido, err := h.partidoService.Crear(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"partido": partido,
	}

	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PartidoHandler) Obtener(w http.ResponseWriter, r *http.Request) {
	partidoID, err := idFromURL(r, "partidoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	partido, err := h.partidoService.Obtener(r.Context(), partidoID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	// El detalle incluye la convocatoria completa con el estado de cada
	// jugador.
	asistencias, err := h.asistenciaService.ListarPorEvento(r.Context(), models.EventoPartido, partidoID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	partido.Asistencias = asistencias

	response := jsonResponse{
		"partido": partido,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PartidoHandler) Listar(w http.ResponseWriter, r *http.Request) {
	filtro, err := filtroFromQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	partidos, err := h.partidoService.Listar(r.Context(), filtro)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"partidos": partidos,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Proximos devuelve los siguientes partidos programados; ?limit acota
// cuántos (por defecto 5).
func (h *PartidoHandler) Proximos(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			badRequestResponse(w, r, errors.New("invalid limit parameter"))
			return
		}
		limit = parsed
	}

	partidos, err := h.partidoService.Proximos(r.Context(), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"partidos": partidos,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PartidoHandler) Actualizar(w http.ResponseWriter, r *http.Request) {
	partidoID, err := idFromURL(r, "partidoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ActualizarPartidoInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	partido, err := h.partidoService.Actualizar(r.Context(), partidoID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"partido": partido,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ActualizarResultado fija el marcador sin cerrar el acta, pensado para ir
// actualizando el resultado en vivo.
func (h *PartidoHandler) ActualizarResultado(w http.ResponseWriter, r *http.Request) {
	partidoID, err := idFromURL(r, "partidoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Resultado string `json:"resultado"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Resultado == "" {
		badRequestResponse(w, r, errors.New("el campo resultado es obligatorio"))
		return
	}

	partido, err := h.partidoService.ActualizarResultado(r.Context(), partidoID, input.Resultado)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"partido": partido,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Finalizar cierra el partido con su acta completa en una sola operación.
func (h *PartidoHandler) Finalizar(w http.ResponseWriter, r *http.Request) {
	partidoID, err := idFromURL(r, "partidoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.FinalizarPartidoInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Resultado == "" {
		badRequestResponse(w, r, errors.New("el campo resultado es obligatorio"))
		return
	}

	acta, err := h.estadisticasService.Finalizar(r.Context(), partidoID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"acta": acta,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PartidoHandler) ObtenerActa(w http.ResponseWriter, r *http.Request) {
	partidoID, err := idFromURL(r, "partidoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	acta, err := h.estadisticasService.ObtenerActa(r.Context(), partidoID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"acta": acta,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PartidoHandler) Eliminar(w http.ResponseWriter, r *http.Request) {
	partidoID, err := idFromURL(r, "partidoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.partidoService.Eliminar(r.Context(), partidoID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
