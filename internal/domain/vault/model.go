package vault

import "time"

// Record зашифрованная запись хранилища. Сервер видит только шифротекст.
type Record struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"-"`
	Ciphertext string    `json:"ciphertext"` // base64
	IV         string    `json:"iv"`         // base64
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
