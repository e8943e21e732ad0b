// Пакет language — определение языка справки для запроса.
// Приоритет: выбор из формы → язык сессии → Accept-Language → язык по умолчанию.
// Выбор из формы и язык сессии принимаются без проверки директории;
// кандидаты из Accept-Language — только если директория существует.
package language

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	xlanguage "golang.org/x/text/language"
)

// DefaultLanguage — язык, если ни один сигнал не подошёл.
const DefaultLanguage = "en-US"

// Source — откуда взят итоговый язык.
type Source string

const (
	SourcePosted  Source = "posted"
	SourceSession Source = "session"
	SourceHeader  Source = "header"
	SourceDefault Source = "default"
)

// resolutionsTotal — количество определений языка по источнику.
var resolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "wh_language_resolutions_total",
		Help: "Количество определений языка справки по источнику",
	},
	[]string{"source"},
)

// DirectoryChecker — проверка существования языковой директории.
// Реализация не должна иметь побочных эффектов.
type DirectoryChecker interface {
	DirectoryExists(name string) bool
}

// Resolution — результат определения языка.
type Resolution struct {
	Language string
	Source   Source
}

// Resolver определяет язык запроса.
type Resolver struct {
	dirs        DirectoryChecker
	defaultLang string
}

// NewResolver создаёт Resolver. Пустой defaultLang заменяется на DefaultLanguage.
func NewResolver(dirs DirectoryChecker, defaultLang string) *Resolver {
	if defaultLang == "" {
		defaultLang = DefaultLanguage
	}
	return &Resolver{dirs: dirs, defaultLang: defaultLang}
}

// Resolve выбирает язык. posted — значение поля формы, stored — язык из сессии,
// acceptLanguage — заголовок Accept-Language. Пустые строки означают отсутствие сигнала.
func (r *Resolver) Resolve(posted, stored, acceptLanguage string) Resolution {
	res := r.resolve(posted, stored, acceptLanguage)
	resolutionsTotal.WithLabelValues(string(res.Source)).Inc()
	return res
}

func (r *Resolver) resolve(posted, stored, acceptLanguage string) Resolution {
	if posted != "" {
		return Resolution{Language: posted, Source: SourcePosted}
	}
	if stored != "" {
		return Resolution{Language: stored, Source: SourceSession}
	}
	if acceptLanguage != "" {
		if lang, ok := r.MatchAcceptLanguage(acceptLanguage); ok {
			return Resolution{Language: lang, Source: SourceHeader}
		}
	}
	return Resolution{Language: r.defaultLang, Source: SourceDefault}
}

// MatchAcceptLanguage перебирает элементы заголовка в порядке их следования
// (веса q не учитываются) и возвращает первую существующую директорию:
// сначала точное совпадение, затем каноническая запись тега ("fr-ca" → "fr-CA"),
// затем основной подтег ("fr-CA" → "fr"). Основной подтег пробуется и для
// элементов, которые не разбираются как тег BCP 47.
func (r *Resolver) MatchAcceptLanguage(header string) (string, bool) {
	for _, token := range strings.Split(header, ",") {
		// Отбрасываем параметры после ";" (q=0.5 и т.п.)
		if i := strings.IndexByte(token, ';'); i >= 0 {
			token = token[:i]
		}
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if r.dirs.DirectoryExists(token) {
			return token, true
		}

		if canonical, ok := canonicalTag(token); ok && canonical != token {
			if r.dirs.DirectoryExists(canonical) {
				return canonical, true
			}
		}

		if i := strings.IndexByte(token, '-'); i > 0 {
			primary := token[:i]
			if r.dirs.DirectoryExists(primary) {
				return primary, true
			}
		}
	}
	return "", false
}

// canonicalTag возвращает каноническую запись тега BCP 47.
// Регистр в заголовке не значим, а имена директорий на диске чувствительны к нему.
func canonicalTag(token string) (string, bool) {
	tag, err := xlanguage.Parse(token)
	if err != nil {
		return "", false
	}
	return tag.String(), true
}
