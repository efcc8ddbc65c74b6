package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func serverError(c *gin.Context, err error) {
	slog.ErrorContext(c.Request.Context(), "request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Hubo un error"})
}

// bindBody decodes the JSON body cached by the validation middleware.
func bindBody(c *gin.Context, req any) bool {
	if err := c.ShouldBindBodyWith(req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Datos no válidos"})
		return false
	}
	return true
}

// Code is a one-time code that clients may send as a JSON string or number.
type Code string

func (t *Code) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Code(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Code(n.String())
	return nil
}
