package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// apiError carrega o status HTTP junto do erro, permitindo que camadas
// internas (usage, persistência, fallback) devolvam erros que o handler
// traduz direto sem switch de tipos espalhado.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return e.Message
}

func NewAPIError(status int, message string) error {
	return &apiError{Status: status, Message: message}
}

// RespondError responde {"error": msg} com o status informado.
func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

// RespondErr extrai o status de um apiError (default 500).
func RespondErr(c *gin.Context, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		RespondError(c, apiErr.Message, apiErr.Status)
		return
	}
	RespondError(c, err.Error(), http.StatusInternalServerError)
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// ParamID lê um :id numérico da rota; já responde 400 quando inválido.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, name+" inválido", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
