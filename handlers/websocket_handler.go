package handlers

import (
	"log/slog"
	"net/http"

	"github.com/adrifdez/club-manager/live"
	"github.com/adrifdez/club-manager/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// El CORS del API no aplica al upgrade; la autorización real de
		// la sala llega por el token en producción.
		return true
	},
}

type WebSocketHandler struct {
	hub            *live.Hub
	partidoService services.PartidoService
}

func NewWebSocketHandler(hub *live.Hub, partidoService services.PartidoService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		partidoService: partidoService,
	}
}

// ServeWs une al cliente a la sala del partido. Por ella llegan los
// mensajes RESULTADO_ACTUALIZADO y ACTA_FINALIZADA.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	partidoID, err := idFromURL(r, "partidoID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.partidoService.Obtener(r.Context(), partidoID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade websocket connection",
			slog.Int("partido_id", partidoID),
			slog.Any("error", err))
		return
	}

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: services.RoomPartido(partidoID),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
