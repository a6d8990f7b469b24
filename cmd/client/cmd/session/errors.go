package session

import (
	"errors"

	"github.com/mgr-punith/password-vault/internal/app/client"
	"github.com/mgr-punith/password-vault/internal/app/client/unlock"
	"github.com/mgr-punith/password-vault/internal/common"
	"github.com/mgr-punith/password-vault/internal/domain/user"
	"github.com/mgr-punith/password-vault/internal/domain/vault"
)

// Describe переводит ошибку в сообщение для пользователя.
func Describe(err error) string {
	switch {
	case errors.Is(err, common.ErrUnauthorized):
		return "требуется вход, выполните 'password-vault auth login'"
	case errors.Is(err, common.ErrTransport):
		return "сервер недоступен, повторите попытку позже"
	case errors.Is(err, unlock.ErrValidation):
		return "PIN должен состоять ровно из 6 цифр"
	case errors.Is(err, unlock.ErrInvalidPin):
		return "неверный PIN"
	case errors.Is(err, unlock.ErrLocked):
		return "хранилище заблокировано, введите PIN"
	case errors.Is(err, unlock.ErrInvalidTransition):
		return "операция недоступна в текущем состоянии хранилища"
	case errors.Is(err, unlock.ErrSetPinFailed):
		return "не удалось задать PIN"
	case errors.Is(err, client.ErrNotSaved):
		return "запись не сохранена: ошибка шифрования"
	case errors.Is(err, vault.ErrNotFound):
		return "запись не найдена"
	case errors.Is(err, user.ErrExists):
		return "пользователь уже существует"
	case errors.Is(err, user.ErrInvalidAuth):
		return "неверный логин или пароль"
	default:
		return err.Error()
	}
}
