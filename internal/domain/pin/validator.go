package pin

// Length длина PIN.
const Length = 6

// Validate проверяет формат PIN: ровно 6 ASCII-цифр.
// Политика PIN не зависит от политики пароля учетной записи.
func Validate(pin string) error {
	if len(pin) != Length {
		return ErrValidation
	}

	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return ErrValidation
		}
	}

	return nil
}
