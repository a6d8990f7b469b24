package unlock

// State состояние разблокировки хранилища.
type State int

const (
	// StateUnknown статус не проверялся или последняя проверка не удалась.
	StateUnknown State = iota
	StateNotInitialized
	StateInitialized
	StateUnlocked
	StateLockedWithError
)

func (s State) String() string {
	switch s {
	case StateNotInitialized:
		return "not_initialized"
	case StateInitialized:
		return "initialized"
	case StateUnlocked:
		return "unlocked"
	case StateLockedWithError:
		return "locked_with_error"
	default:
		return "unknown"
	}
}
