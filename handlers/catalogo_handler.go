package handlers

import (
	"net/http"

	"github.com/adrifdez/club-manager/services"
)

type CatalogoHandler struct {
	catalogoService services.CatalogoService
}

func NewCatalogoHandler(catalogoService services.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{catalogoService: catalogoService}
}

func (h *CatalogoHandler) ListarPosiciones(w http.ResponseWriter, r *http.Request) {
	posiciones, err := h.catalogoService.ListarPosiciones(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"posiciones": posiciones,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CatalogoHandler) ListarMotivos(w http.ResponseWriter, r *http.Request) {
	motivos, err := h.catalogoService.ListarMotivos(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"motivos": motivos,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
