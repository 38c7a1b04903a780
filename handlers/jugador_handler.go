package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/adrifdez/club-manager/middleware"
	"github.com/adrifdez/club-manager/models"
	"github.com/adrifdez/club-manager/services"
)

type JugadorHandler struct {
	jugadorService services.JugadorService
}

func NewJugadorHandler(jugadorService services.JugadorService) *JugadorHandler {
	return &JugadorHandler{jugadorService: jugadorService}
}

// Listar devuelve la plantilla. Con ?incluir_inactivos=true el gestor ve
// también las bajas; los jugadores sólo ven a los activos.
func (h *JugadorHandler) Listar(w http.ResponseWriter, r *http.Request) {
	soloActivos := true
	if r.URL.Query().Get("incluir_inactivos") == "true" {
		rol, err := middleware.GetUserRolFromContext(r.Context())
		if err == nil && rol == models.RolGestor {
			soloActivos = false
		}
	}

	jugadores, err := h.jugadorService.Listar(r.Context(), soloActivos)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"jugadores": jugadores,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JugadorHandler) Obtener(w http.ResponseWriter, r *http.Request) {
	jugadorID, err := idFromURL(r, "jugadorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	jugador, err := h.jugadorService.Obtener(r.Context(), jugadorID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"jugador": jugador,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Actualizar edita la ficha del jugador (y nombre/email de su cuenta).
// Un jugador sólo puede editar la suya; el gestor, la de cualquiera.
func (h *JugadorHandler) Actualizar(w http.ResponseWriter, r *http.Request) {
	jugadorID, err := idFromURL(r, "jugadorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUsuarioID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}
	rol, _ := middleware.GetUserRolFromContext(r.Context())

	var input services.ActualizarJugadorInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	jugador, err := h.jugadorService.Actualizar(r.Context(), jugadorID, currentUsuarioID, rol == models.RolGestor, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"jugador": jugador,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CambiarEstado activa o da de baja lógica a un jugador (sólo gestor).
func (h *JugadorHandler) CambiarEstado(w http.ResponseWriter, r *http.Request) {
	jugadorID, err := idFromURL(r, "jugadorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Activo *bool `json:"activo"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Activo == nil {
		badRequestResponse(w, r, errors.New("el campo activo es obligatorio"))
		return
	}

	jugador, err := h.jugadorService.CambiarEstado(r.Context(), jugadorID, *input.Activo)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"jugador": jugador,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SubirFoto recibe la foto del jugador en el campo multipart "foto".
// Un jugador sólo puede cambiar la suya; el gestor, la de cualquiera.
func (h *JugadorHandler) SubirFoto(w http.ResponseWriter, r *http.Request) {
	jugadorID, err := idFromURL(r, "jugadorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUsuarioID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user for photo upload")
		return
	}
	rol, _ := middleware.GetUserRolFromContext(r.Context())

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("foto")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get foto file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for foto"))
		return
	}

	jugador, err := h.jugadorService.ActualizarFoto(r.Context(), jugadorID, currentUsuarioID, rol == models.RolGestor, file, contentType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"jugador": jugador,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
