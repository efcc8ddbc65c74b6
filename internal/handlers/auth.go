package handlers

import (
	"errors"
	"net/http"

	"github.com/cashtrackr/cashtrackr-api/internal/middleware"
	"github.com/cashtrackr/cashtrackr-api/internal/services"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type CreateAccountRequest struct {
	Name     string `json:"name" example:"Juan"`
	Email    string `json:"email" example:"juan@correo.com"`
	Password string `json:"password" example:"password"`
}

type TokenRequest struct {
	Token Code `json:"token" swaggertype:"string" example:"123456"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"juan@correo.com"`
	Password string `json:"password" example:"password"`
}

type EmailRequest struct {
	Email string `json:"email" example:"juan@correo.com"`
}

type PasswordRequest struct {
	Password string `json:"password" example:"password"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name" example:"Juan"`
	Email string `json:"email" example:"juan@correo.com"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" example:"password"`
	Password        string `json:"password" example:"newPassword"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateAccount godoc
// @Summary Create an account
// @Description Registers an unconfirmed account and emails a 6 digit confirmation code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "Account details"
// @Success 201 {string} string "Cuenta creada"
// @Failure 400 {object} validation.ErrorsResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/create-account [post]
func (h *AuthHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if !bindBody(c, &req) {
		return
	}

	_, err := h.authService.CreateAccount(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailInUse) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Este correo ya está en uso"})
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, "Cuenta creada")
}

// ConfirmAccount godoc
// @Summary Confirm an account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Confirmation code"
// @Success 200 {string} string "Cuenta confirmada"
// @Failure 400 {object} validation.ErrorsResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/confirm-account [post]
func (h *AuthHandler) ConfirmAccount(c *gin.Context) {
	var req TokenRequest
	if !bindBody(c, &req) {
		return
	}

	err := h.authService.ConfirmAccount(c.Request.Context(), string(req.Token))
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Token no válido"})
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, "Cuenta confirmada")
}

// Login godoc
// @Summary Log in
// @Description Returns a signed session token as a JSON string
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {string} string "JWT"
// @Failure 400 {object} validation.ErrorsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindBody(c, &req) {
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Este usuario no existe"})
		case errors.Is(err, services.ErrAccountNotConfirmed):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "La cuenta no ha sido confirmada"})
		case errors.Is(err, services.ErrIncorrectPassword):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Contraseña incorrecta"})
		default:
			serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, token)
}

// ForgotPassword godoc
// @Summary Request a password reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body EmailRequest true "Account email"
// @Success 200 {string} string "Revisa tu correo para instrucciones"
// @Failure 400 {object} validation.ErrorsResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req EmailRequest
	if !bindBody(c, &req) {
		return
	}

	err := h.authService.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Este usuario no existe"})
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, "Revisa tu correo para instrucciones")
}

// ValidateToken godoc
// @Summary Check a password reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Reset code"
// @Success 200 {string} string "Token válido, asigna una nueva contraseña"
// @Failure 400 {object} validation.ErrorsResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/validate-token [post]
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	var req TokenRequest
	if !bindBody(c, &req) {
		return
	}

	err := h.authService.ValidateToken(c.Request.Context(), string(req.Token))
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Token no válido"})
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, "Token válido, asigna una nueva contraseña")
}

// ResetPassword godoc
// @Summary Set a new password with a reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset code"
// @Param request body PasswordRequest true "New password"
// @Success 200 {string} string "Su contraseña ha sido modificada"
// @Failure 400 {object} validation.ErrorsResponse
// @Failure 404 {object} ErrorResponse
// @Router /auth/reset-password/{token} [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req PasswordRequest
	if !bindBody(c, &req) {
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Token no válido"})
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, "Su contraseña ha sido modificada")
}

// User godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/user [get]
func (h *AuthHandler) User(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, UserResponse{ID: user.ID, Name: user.Name, Email: user.Email})
}

// UpdateUser godoc
// @Summary Update profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile"
// @Success 200 {string} string "Perfil actualizado"
// @Failure 400 {object} validation.ErrorsResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/user [put]
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	var req UpdateProfileRequest
	if !bindBody(c, &req) {
		return
	}

	err := h.authService.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), req.Name, req.Email)
	if err != nil {
		if errors.Is(err, services.ErrEmailInUse) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Este correo ya está en uso"})
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, "Perfil actualizado")
}

// UpdatePassword godoc
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdatePasswordRequest true "Current and new password"
// @Success 200 {string} string "Contraseña actualizada"
// @Failure 400 {object} validation.ErrorsResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/update-password [post]
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if !bindBody(c, &req) {
		return
	}

	user := middleware.CurrentUser(c)
	err := h.authService.UpdatePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrIncorrectPassword) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "La contraseña actual es incorrecta"})
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, "Contraseña actualizada")
}

// CheckPassword godoc
// @Summary Verify the current password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PasswordRequest true "Password"
// @Success 200 {string} string "Contraseña correcta"
// @Failure 400 {object} validation.ErrorsResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/check-password [post]
func (h *AuthHandler) CheckPassword(c *gin.Context) {
	var req PasswordRequest
	if !bindBody(c, &req) {
		return
	}

	user := middleware.CurrentUser(c)
	err := h.authService.CheckPassword(c.Request.Context(), user.ID, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrIncorrectPassword) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "La contraseña es incorrecta"})
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, "Contraseña correcta")
}
