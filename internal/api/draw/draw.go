package draw

import (
	"net/http"
	"strconv"

	dto "bingo_caller/internal/api/dto/draw"
	"bingo_caller/internal/converter"
	"bingo_caller/internal/model"
	"bingo_caller/internal/service"
	"bingo_caller/pkg/resp"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type HandlerDeps struct {
	Serv   service.DrawService
	Logger *logrus.Logger
}

type Handler struct {
	serv   service.DrawService
	logger *logrus.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, logger: deps.Logger}
}

// Draw запускает розыгрыш. С ?wait=true ждёт зафиксированный номер
func (h *Handler) Draw(w http.ResponseWriter, r *http.Request) {
	outcome, cycle := h.serv.RequestDraw(r.Context())

	switch outcome {
	case model.OutcomeBusy:
		resp.WriteJSONResponse(w, http.StatusConflict, dto.DrawRejectedResponse{
			Outcome:   outcome.String(),
			Cycle:     cycle,
			Remaining: h.serv.Remaining(),
		})
		return
	case model.OutcomeExhausted:
		resp.WriteJSONResponse(w, http.StatusGone, dto.DrawRejectedResponse{
			Outcome: outcome.String(),
		})
		return
	}

	wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))
	if !wait {
		resp.WriteJSONResponse(w, http.StatusAccepted, dto.DrawAcceptedResponse{
			Outcome: outcome.String(),
			Cycle:   cycle,
		})
		return
	}

	res, err := h.serv.Await(r.Context(), cycle)
	if err != nil {
		if r.Context().Err() != nil {
			// Клиент ушёл, цикл всё равно доиграет
			h.logger.Debugf("client left while waiting for cycle %d", cycle)
			return
		}
		h.logger.Infof("cycle %d ended without a number: %v", cycle, err)
		resp.WriteJSONResponse(w, http.StatusGone, dto.DrawRejectedResponse{
			Outcome: model.OutcomeExhausted.String(),
			Cycle:   cycle,
		})
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToDrawResultResponse(*res))
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(h.serv.Snapshot()))
}

// History история розыгрыша, ?order=desc - последние сверху
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	newestFirst := r.URL.Query().Get("order") == "desc"
	resp.WriteJSONResponse(w, http.StatusOK,
		converter.ToHistoryResponse(h.serv.History(), h.serv.ColumnOf, newestFirst))
}

func (h *Handler) Column(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "number must be an integer")
		return
	}

	column, err := h.serv.ColumnOf(n)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.ColumnResponse{Number: n, Column: string(column)})
}
