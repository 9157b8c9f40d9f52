package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/task-manager-app/backend/internal/service"
	"github.com/task-manager-app/backend/internal/util"
)

type UserHandler struct {
	auth *service.AuthService
}

func RegisterUsers(e *echo.Echo, auth *service.AuthService, tokens *util.JWTManager) {
	handler := &UserHandler{auth: auth}

	group := e.Group("/api/users")
	group.POST("/register", handler.register)
	group.POST("/login", handler.login)
	group.GET("/profile", handler.profile, RequireAuth(tokens))
	group.POST("/forgotpassword", handler.forgotPassword)
	group.PUT("/resetpassword/:resettoken", handler.resetPassword)
}

func (h *UserHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Message("Cuerpo de la solicitud inválido"))
	}

	result, err := h.auth.Register(c.Request().Context(), req.Nombre, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			return c.JSON(http.StatusBadRequest, util.Message("El usuario ya existe"))
		case errors.Is(err, service.ErrMissingFields):
			return c.JSON(http.StatusBadRequest, util.Message("Por favor completa todos los campos"))
		case errors.Is(err, service.ErrPasswordTooShort):
			return c.JSON(http.StatusBadRequest, util.Message("La contraseña debe tener al menos 6 caracteres"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Message("Error interno del servidor"))
		}
	}

	return c.JSON(http.StatusCreated, util.Envelope{
		"message": "Usuario registrado exitosamente",
		"token":   result.Token,
		"user":    toAuthUser(result.User),
	})
}

func (h *UserHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Message("Cuerpo de la solicitud inválido"))
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password are indistinguishable on the wire.
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, util.Message("Credenciales inválidas"))
		}
		return c.JSON(http.StatusInternalServerError, util.Message("Error interno del servidor"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"message": "Sesión iniciada",
		"token":   result.Token,
		"user":    toAuthUser(result.User),
	})
}

func (h *UserHandler) profile(c echo.Context) error {
	userID, ok := CurrentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Message("Token no proporcionado"))
	}

	user, err := h.auth.Profile(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, util.Message("Usuario no encontrado"))
		}
		return c.JSON(http.StatusInternalServerError, util.Message("Error interno del servidor"))
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) forgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Message("Cuerpo de la solicitud inválido"))
	}

	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, util.Message("Usuario no encontrado"))
		case errors.Is(err, service.ErrMailDelivery):
			return c.JSON(http.StatusInternalServerError, util.Message("No se pudo enviar el correo"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Message("Error interno del servidor"))
		}
	}

	return c.JSON(http.StatusOK, util.Message("Correo enviado"))
}

func (h *UserHandler) resetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Message("Cuerpo de la solicitud inválido"))
	}

	err := h.auth.ResetPassword(c.Request().Context(), c.Param("resettoken"), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResetTokenInvalid):
			return c.JSON(http.StatusBadRequest, util.Message("Token inválido o expirado"))
		case errors.Is(err, service.ErrPasswordTooShort):
			return c.JSON(http.StatusBadRequest, util.Message("La contraseña debe tener al menos 6 caracteres"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Message("Error interno del servidor"))
		}
	}

	return c.JSON(http.StatusOK, util.Message("Contraseña actualizada exitosamente"))
}
