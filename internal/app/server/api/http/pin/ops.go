package pin

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) hasOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-has-pin",
		Method:      http.MethodGet,
		Path:        "/api/vault/has-pin",
		Summary:     "Проверить, задан ли PIN хранилища",
		Tags:        []string{"pin"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) setOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-set-pin",
		Method:      http.MethodPost,
		Path:        "/api/vault/set-pin",
		Summary:     "Задать PIN хранилища",
		Description: "PIN задается один раз. Повторная установка возвращает 409.",
		Tags:        []string{"pin"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) verifyOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-verify-pin",
		Method:      http.MethodPost,
		Path:        "/api/vault/verify-pin",
		Summary:     "Проверить PIN хранилища",
		Tags:        []string{"pin"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
