package user

import "time"

type User struct {
	ID        string
	Login     string
	Password  string // хэш
	CreatedAt time.Time
}
