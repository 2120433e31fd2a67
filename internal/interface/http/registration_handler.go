package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-ddd-user-registration/internal/application"
	vo "github.com/oksasatya/go-ddd-user-registration/internal/domain/valueobject"
	"github.com/oksasatya/go-ddd-user-registration/pkg/helpers"
	"github.com/oksasatya/go-ddd-user-registration/pkg/response"
	"github.com/oksasatya/go-ddd-user-registration/pkg/validation"
)

const (
	msgInvalidPayload  = "Invalid request body"
	msgEmailRegistered = "Email already registered"
	msgInternal        = "Internal server error"
)

type RegistrationHandler struct {
	Svc    *userapp.RegistrationService
	Logger *logrus.Logger
}

func NewRegistrationHandler(svc *userapp.RegistrationService, logger *logrus.Logger) *RegistrationHandler {
	return &RegistrationHandler{Svc: svc, Logger: logger}
}

// Missing fields are left to the service so the client sees the domain message.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *RegistrationHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, msgInvalidPayload, validation.ToDetails(err))
		return
	}

	out, err := h.Svc.Register(c.Request.Context(), userapp.RegisterInput{Email: req.Email, Password: req.Password})
	if err != nil {
		var ve *vo.ValidationError
		switch {
		case errors.As(err, &ve):
			response.Error[any](c, http.StatusBadRequest, ve.Message, nil)
		case errors.Is(err, userapp.ErrEmailAlreadyRegistered):
			response.Error[any](c, http.StatusConflict, msgEmailRegistered, nil)
		default:
			helpers.LogError(h.Logger, "registration failed", err, logrus.Fields{
				"request_id": c.GetString("request_id"),
				"real_ip":    c.GetString("real_ip"),
			})
			response.Error[any](c, http.StatusInternalServerError, msgInternal, nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, out, "user registered", nil)
}
