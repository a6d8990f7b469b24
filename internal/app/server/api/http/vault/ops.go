package vault

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-list",
		Method:      http.MethodGet,
		Path:        "/api/vault/list",
		Summary:     "Список зашифрованных записей, новые первыми",
		Tags:        []string{"vault"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-create",
		Method:      http.MethodPost,
		Path:        "/api/vault/create",
		Summary:     "Создать запись",
		Description: "Принимает только шифротекст и IV. Открытые данные на сервер не передаются.",
		Tags:        []string{"vault"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-update",
		Method:      http.MethodPut,
		Path:        "/api/vault/update/{id}",
		Summary:     "Обновить запись",
		Tags:        []string{"vault"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-delete",
		Method:      http.MethodDelete,
		Path:        "/api/vault/delete/{id}",
		Summary:     "Удалить запись",
		Tags:        []string{"vault"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
