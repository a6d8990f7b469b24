package client

import (
	"strings"
	"time"

	"github.com/mgr-punith/password-vault/internal/app/client/crypto"
)

// Item расшифрованная запись хранилища.
type Item struct {
	ID        string
	Entry     crypto.Entry
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Failure запись, которую не удалось расшифровать.
type Failure struct {
	ID  string
	Err error
}

type Listing struct {
	Items  []Item
	Failed []Failure
	// Offline список взят из локального кэша, сервер недоступен.
	Offline bool
}

// Search фильтрует записи по подстроке в site, username или notes без учета регистра.
// Пустой запрос возвращает все записи.
func (l Listing) Search(query string) []Item {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return l.Items
	}

	var found []Item
	for _, it := range l.Items {
		if strings.Contains(strings.ToLower(it.Entry.Site), query) ||
			strings.Contains(strings.ToLower(it.Entry.Username), query) ||
			strings.Contains(strings.ToLower(it.Entry.Notes), query) {
			found = append(found, it)
		}
	}

	return found
}

// Find ищет запись по ID.
func (l Listing) Find(id string) (Item, bool) {
	for _, it := range l.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
