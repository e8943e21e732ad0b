// help.go — обработчик страниц справки.
// Определяет язык, читает документ и вставляет оглавление и форму выбора языка
// после открывающего тега <body ...>.
package handlers

import (
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dcplusplus/webhelp/internal/content"
	"github.com/dcplusplus/webhelp/internal/language"
	"github.com/dcplusplus/webhelp/internal/page"
	"github.com/dcplusplus/webhelp/internal/session"
)

// LanguageField — имя поля формы выбора языка.
const LanguageField = "language"

// documentsServedTotal — ответы обработчика справки по исходу.
var documentsServedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "wh_documents_served_total",
		Help: "Количество ответов обработчика справки по исходу",
	},
	[]string{"result"},
)

// Исходы для wh_documents_served_total.
const (
	resultSpliced  = "spliced"
	resultVerbatim = "verbatim"
	resultNotFound = "not_found"
	resultRejected = "rejected"
)

// Library — файлы справки, нужные обработчику.
type Library interface {
	language.DirectoryChecker
	ReadDocument(lang, name string) ([]byte, error)
	ReadTOC(lang string) ([]byte, bool)
	Languages() ([]content.Language, error)
}

// HelpHandler — обработчик страниц справки.
type HelpHandler struct {
	library         Library
	resolver        *language.Resolver
	sessions        session.Store
	mountPath       string
	defaultDocument string
	logger          *slog.Logger
}

// NewHelpHandler создаёт обработчик. mountPath — префикс URL справки
// (например, "/webhelp"), defaultDocument — документ для пустого имени.
func NewHelpHandler(
	library Library,
	resolver *language.Resolver,
	sessions session.Store,
	mountPath string,
	defaultDocument string,
	logger *slog.Logger,
) *HelpHandler {
	return &HelpHandler{
		library:         library,
		resolver:        resolver,
		sessions:        sessions,
		mountPath:       mountPath,
		defaultDocument: defaultDocument,
		logger:          logger,
	}
}

// ServeHTTP обрабатывает GET/HEAD/POST {mountPath}[/{document}].
func (h *HelpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL == nil || r.URL.Path == "" {
		documentsServedTotal.WithLabelValues(resultRejected).Inc()
		writeErrorPage(w, http.StatusBadRequest)
		return
	}

	posted := h.postedLanguage(r)
	if posted != "" {
		// Выбор сохраняется без проверки директории
		if err := h.sessions.SetLanguage(w, r, posted); err != nil {
			h.logger.Warn("Не удалось сохранить язык в сессии",
				slog.String("language", posted),
				slog.String("error", err.Error()),
			)
		}
	}

	var stored string
	if posted == "" {
		var err error
		stored, err = h.sessions.Language(r)
		if err != nil {
			h.logger.Debug("Сессия не прочитана, игнорируется",
				slog.String("error", err.Error()),
			)
			stored = ""
		}
	}

	res := h.resolver.Resolve(posted, stored, r.Header.Get("Accept-Language"))
	name := DocumentName(r.URL.Path, h.mountPath, h.defaultDocument)

	doc, err := h.library.ReadDocument(res.Language, name)
	if err != nil {
		h.logger.Debug("Документ не найден",
			slog.String("language", res.Language),
			slog.String("document", name),
			slog.String("error", err.Error()),
		)
		documentsServedTotal.WithLabelValues(resultNotFound).Inc()
		writeErrorPage(w, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentType(name, doc))
	w.Header().Set("Content-Language", res.Language)

	if _, ok := page.SplicePoint(doc); !ok {
		documentsServedTotal.WithLabelValues(resultVerbatim).Inc()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(doc)
		return
	}

	out, err := h.compose(r, doc, res.Language, name)
	if err != nil {
		// Блоки не отрисовались — отдаём документ как есть
		h.logger.Error("Ошибка сборки страницы",
			slog.String("document", name),
			slog.String("error", err.Error()),
		)
		documentsServedTotal.WithLabelValues(resultVerbatim).Inc()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(doc)
		return
	}

	documentsServedTotal.WithLabelValues(resultSpliced).Inc()
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// compose отрисовывает оглавление и форму и вставляет их в документ.
func (h *HelpHandler) compose(r *http.Request, doc []byte, lang, name string) ([]byte, error) {
	ctx := r.Context()

	var tocBlock []byte
	if toc, ok := h.library.ReadTOC(lang); ok {
		var err error
		tocBlock, err = page.Render(ctx, page.TOCBlock(toc))
		if err != nil {
			return nil, err
		}
	}

	langs, err := h.library.Languages()
	if err != nil {
		h.logger.Warn("Не удалось перечислить языки",
			slog.String("error", err.Error()),
		)
		langs = nil
	}

	selector, err := page.Render(ctx, page.SelectorForm(path.Base(name), langs, lang))
	if err != nil {
		return nil, err
	}

	out, _ := page.Splice(doc, tocBlock, selector)
	return out, nil
}

// postedLanguage возвращает язык из формы POST-запроса.
// Пустое значение считается отсутствием выбора.
func (h *HelpHandler) postedLanguage(r *http.Request) string {
	if r.Method != http.MethodPost {
		return ""
	}
	return strings.TrimSpace(r.PostFormValue(LanguageField))
}

// DocumentName выводит имя документа из пути запроса: отрезает mountPath
// и ведущий слеш; пустой остаток заменяется на defaultDocument.
// Обход директорий отсекается при чтении (fs.ValidPath).
func DocumentName(requestPath, mountPath, defaultDocument string) string {
	name := strings.TrimPrefix(requestPath, mountPath)
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return defaultDocument
	}
	return name
}

// contentType определяет тип по расширению, иначе по содержимому.
func contentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}

// writeErrorPage пишет фиксированный ответ об ошибке.
func writeErrorPage(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(page.ErrorBody))
}
