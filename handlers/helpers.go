package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/adrifdez/club-manager/repositories"
	"github.com/adrifdez/club-manager/services"
	"github.com/go-chi/chi/v5"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err) // error de programación: dst no es un puntero
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.Error("error writing error JSON response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusUnauthorized, message)
}

func forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusForbidden, message)
}

// mapServiceErrorToHTTP traduce los errores del servicio a respuestas HTTP.
// La validación vive en servicios y value objects; aquí sólo se mapea.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	// Not found
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrUsuarioNotFound),
		errors.Is(err, services.ErrJugadorNotFound),
		errors.Is(err, services.ErrEntrenamientoNotFound),
		errors.Is(err, services.ErrPartidoNotFound),
		errors.Is(err, services.ErrMotivoNotFound),
		errors.Is(err, services.ErrActaNotFound):
		notFoundResponse(w, r)

	// Conflictos
	case errors.Is(err, services.ErrEmailEnUso),
		errors.Is(err, services.ErrJugadorYaRegistrado),
		errors.Is(err, services.ErrPartidoYaFinalizado):
		conflictResponse(w, r, err.Error())

	// Validación y reglas de negocio → 400
	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrEstadoAsistenciaInvalido),
		errors.Is(err, services.ErrMotivoRequerido),
		errors.Is(err, services.ErrMotivoNoPermitido),
		errors.Is(err, services.ErrFechaRequerida),
		errors.Is(err, services.ErrLugarRequerido),
		errors.Is(err, services.ErrRivalRequerido),
		errors.Is(err, services.ErrTipoPartidoInvalido),
		errors.Is(err, services.ErrAccionInvalida),
		errors.Is(err, services.ErrNombreRequerido),
		errors.Is(err, services.ErrFotoNoDisponible):
		badRequestResponse(w, r, err)

	// Autenticación y autorización
	case errors.Is(err, services.ErrCredencialesInvalidas):
		unauthorizedResponse(w, r, err.Error())
	case errors.Is(err, services.ErrOperacionNoPermitida):
		forbiddenResponse(w, r, err.Error())

	default:
		serverErrorResponse(w, r, err)
	}
}

func idFromURL(r *http.Request, param string) (int, error) {
	idStr := chi.URLParam(r, param)
	if idStr == "" {
		return 0, fmt.Errorf("missing %s in URL path", param)
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", param, idStr)
	}
	return id, nil
}

// filtroFromQuery construye el filtro de listado a partir de fechaDesde,
// fechaHasta, limit y offset.
func filtroFromQuery(r *http.Request) (repositories.EventoFiltro, error) {
	var filtro repositories.EventoFiltro
	q := r.URL.Query()

	if desde := q.Get("fechaDesde"); desde != "" {
		t, err := time.ParseInLocation("2006-01-02", desde, time.Local)
		if err != nil {
			return filtro, fmt.Errorf("invalid fechaDesde: %q", desde)
		}
		filtro.FechaDesde = &t
	}
	if hasta := q.Get("fechaHasta"); hasta != "" {
		t, err := time.ParseInLocation("2006-01-02", hasta, time.Local)
		if err != nil {
			return filtro, fmt.Errorf("invalid fechaHasta: %q", hasta)
		}
		// Inclusivo: hasta el final del día.
		t = t.Add(24*time.Hour - time.Second)
		filtro.FechaHasta = &t
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			return filtro, fmt.Errorf("invalid limit: %q", limitStr)
		}
		filtro.Limit = limit
	}
	if offsetStr := q.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return filtro, fmt.Errorf("invalid offset: %q", offsetStr)
		}
		filtro.Offset = offset
	}
	return filtro, nil
}
