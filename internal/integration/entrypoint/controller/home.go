package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/controle-financeiro/api/internal/integration/entrypoint/dto"
)

const (
	serviceName        = "Controle Financeiro API"
	serviceVersion     = "1.0.0"
	serviceDescription = "API RESTful para gerenciamento de finanças pessoais"
)

// HomeController serves the service information on the root route.
type HomeController struct{}

// NewHomeController creates a new home controller instance.
func NewHomeController() *HomeController {
	return &HomeController{}
}

// Index handles GET / requests.
func (h *HomeController) Index(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ServiceInfoResponse{
		Message:     serviceName,
		Version:     serviceVersion,
		Description: serviceDescription,
		Endpoints: map[string]string{
			"transacoes": "/api/transacoes",
			"categorias": "/api/categorias",
		},
	})
}
