package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DetailResponse is the error body shape: {"detail": "..."}
type DetailResponse struct {
	Detail string `json:"detail"`
}

// MensagemResponse is the confirmation body shape: {"mensagem": "..."}
type MensagemResponse struct {
	Mensagem string `json:"mensagem"`
}

// RespondOK sends a 200 OK response with data
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// RespondCreated sends a 201 Created response with data
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// RespondWithDetail sends an error response with the given status
func RespondWithDetail(c *gin.Context, statusCode int, detail string) {
	c.JSON(statusCode, DetailResponse{Detail: detail})
}

// RespondBadRequest sends a 400 Bad Request response
func RespondBadRequest(c *gin.Context, detail string) {
	RespondWithDetail(c, http.StatusBadRequest, detail)
}

// RespondNotFound sends a 404 Not Found response
func RespondNotFound(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Recurso não encontrado"
	}
	RespondWithDetail(c, http.StatusNotFound, detail)
}

// RespondInternalError sends a 500 Internal Server Error response
func RespondInternalError(c *gin.Context) {
	RespondWithDetail(c, http.StatusInternalServerError, "Erro interno do servidor")
}
