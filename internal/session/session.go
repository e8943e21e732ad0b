// Пакет session — хранение выбранного языка между запросами одного клиента.
// Две реализации Store: зашифрованный cookie (без состояния на сервере)
// и in-memory LRU с TTL, где cookie хранит только идентификатор сессии.
package session

import "net/http"

// Data — данные сессии справки.
type Data struct {
	// Language — язык, выбранный пользователем через форму.
	Language string `json:"language"`
}

// Store — хранилище сессий, ключ клиента передаётся через cookie.
// Сессия создаётся при первой записи, срок жизни определяет реализация.
type Store interface {
	// Language возвращает сохранённый язык или "" если сессии нет.
	Language(r *http.Request) (string, error)
	// SetLanguage сохраняет язык и при необходимости выставляет cookie.
	SetLanguage(w http.ResponseWriter, r *http.Request, lang string) error
}
