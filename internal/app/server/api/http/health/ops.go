package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) healthCheckOp() huma.Operation {
	return huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Service and database health",
		Description: "Pings the database, 503 when it is unreachable",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
	}
}
