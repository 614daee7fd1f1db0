package ws

import (
	"net/http"

	dto "bingo_caller/internal/api/dto/draw"
	"bingo_caller/internal/converter"
	"bingo_caller/internal/model"
	"bingo_caller/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/websocket"
)

const queueSize = 256

type HandlerDeps struct {
	Serv   service.DrawService
	Logger *logrus.Logger
}

// Handler Поток событий розыгрыша для табло в браузере
type Handler struct {
	serv   service.DrawService
	logger *logrus.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, logger: deps.Logger}
}

// Serve websocket.Server без проверки Origin: табло открывают с любых хостов
func (h *Handler) Serve() http.Handler {
	return websocket.Server{Handler: h.stream}
}

func (h *Handler) stream(conn *websocket.Conn) {
	remote := conn.Request().RemoteAddr
	done := make(chan struct{})
	queue := make(chan model.Event, queueSize)

	// Подписываемся до снимка, чтобы не потерять события между ними
	unsubscribe := h.serv.Subscribe("ws "+remote, func(ev model.Event) {
		select {
		case queue <- ev:
		case <-done:
		}
	})
	defer func() {
		_ = conn.Close()
		unsubscribe()
		h.logger.Debugf("ws client %s disconnected", remote)
	}()

	// Клиент ничего не шлёт, чтение только ловит закрытие
	go func() {
		defer close(done)
		var discard []byte
		for {
			if err := websocket.Message.Receive(conn, &discard); err != nil {
				return
			}
		}
	}()

	h.logger.Debugf("ws client %s connected", remote)
	if err := websocket.JSON.Send(conn, h.snapshot()); err != nil {
		h.logger.Warnf("ws client %s: send snapshot: %v", remote, err)
		return
	}

	for {
		select {
		case ev := <-queue:
			if err := websocket.JSON.Send(conn, converter.ToEventMessage(ev)); err != nil {
				h.logger.Warnf("ws client %s: send %s: %v", remote, ev.Kind, err)
				return
			}
		case <-done:
			return
		}
	}
}

func (h *Handler) snapshot() dto.SnapshotMessage {
	snap := h.serv.Snapshot()
	return dto.SnapshotMessage{
		Type:    "snapshot",
		State:   converter.ToStateResponse(snap),
		History: converter.ToHistoryResponse(snap.History, h.serv.ColumnOf, false),
	}
}
