package auth

import (
	"errors"
	"net/http"

	dto "bingo_caller/internal/api/dto/auth"
	"bingo_caller/internal/service"
	authServ "bingo_caller/internal/service/auth"
	"bingo_caller/pkg/req"
	"bingo_caller/pkg/resp"

	"github.com/sirupsen/logrus"
)

type HandlerDeps struct {
	Serv   service.AuthService
	Logger *logrus.Logger
}

type Handler struct {
	serv   service.AuthService
	logger *logrus.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, logger: deps.Logger}
}

// Login выдаёт access_token ведущему
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	accessToken, err := h.serv.Login(r.Context(), requestBody.Login, requestBody.Password)
	if err != nil {
		if errors.Is(err, authServ.ErrInvalidCredentials) {
			h.logger.Infof("failed login for %q", requestBody.Login)
			resp.WriteError(w, http.StatusUnauthorized, "login failed")
			return
		}
		h.logger.Errorf("login error: %v", err)
		resp.WriteError(w, http.StatusInternalServerError, "login failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.LoginResponse{AccessToken: accessToken})
}
