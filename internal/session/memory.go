// memory.go — сессии в памяти процесса: LRU с TTL, cookie хранит только ID.
// Обёртка над hashicorp/golang-lru/v2/expirable.
package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// IDCookieName — имя cookie с идентификатором сессии.
const IDCookieName = "webhelp_sid"

// MemoryStore — сессии в памяти. Каждый экземпляр сервиса хранит свои сессии,
// при рестарте они теряются. Записи вытесняются по TTL и по ёмкости.
type MemoryStore struct {
	sessions *expirable.LRU[string, Data]
	path     string
	ttl      time.Duration
	secure   bool
}

// NewMemoryStore создаёт хранилище на maxEntries сессий с временем жизни ttl.
// Gauge wh_sessions_active регистрируется в reg (nil — без метрики).
func NewMemoryStore(maxEntries int, ttl time.Duration, path string, secure bool, reg prometheus.Registerer) *MemoryStore {
	if path == "" {
		path = "/"
	}
	s := &MemoryStore{
		sessions: expirable.NewLRU[string, Data](maxEntries, nil, ttl),
		path:     path,
		ttl:      ttl,
		secure:   secure,
	}

	promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
		Name: "wh_sessions_active",
		Help: "Количество сессий справки в памяти",
	}, func() float64 { return float64(s.Len()) })

	return s
}

// Language возвращает язык сессии. Неизвестный или истёкший ID — "".
func (s *MemoryStore) Language(r *http.Request) (string, error) {
	id, ok := sessionID(r)
	if !ok {
		return "", nil
	}
	data, ok := s.sessions.Get(id)
	if !ok {
		return "", nil
	}
	return data.Language, nil
}

// SetLanguage сохраняет язык. Новый ID выдаётся, если у клиента его нет.
func (s *MemoryStore) SetLanguage(w http.ResponseWriter, r *http.Request, lang string) error {
	id, ok := sessionID(r)
	if !ok {
		id = uuid.NewString()
	}
	s.sessions.Add(id, Data{Language: lang})

	// Cookie обновляется при каждой записи, чтобы продлить срок
	http.SetCookie(w, &http.Cookie{
		Name:     IDCookieName,
		Value:    id,
		Path:     s.path,
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Len — текущее количество сессий.
func (s *MemoryStore) Len() int {
	return s.sessions.Len()
}

// sessionID извлекает ID из cookie; принимаются только корректные UUID.
func sessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(IDCookieName)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
