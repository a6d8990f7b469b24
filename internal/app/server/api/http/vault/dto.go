package vault

import "github.com/mgr-punith/password-vault/internal/domain/vault"

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Items []vault.Record `json:"items"`
}

type createInput struct {
	Body request
}

type updateInput struct {
	ID   string `path:"id" doc:"ID записи"`
	Body request
}

type deleteInput struct {
	ID string `path:"id" doc:"ID записи"`
}

// request поля необязательные для huma: пропуски и мусор отсекает сервис с ответом 400.
type request struct {
	Ciphertext string `json:"ciphertext,omitempty" doc:"Шифротекст AES-GCM в base64"`
	IV         string `json:"iv,omitempty" doc:"IV (12 байт) в base64"`
}

type createOutput struct {
	Body createResponse
}

type createResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

type output struct {
	Body response
}

type response struct {
	Success bool `json:"success"`
}
