// Пакет content — доступ к файлам справки на диске.
// Корень содержит по одной поддиректории на язык; в каждой лежат
// HTML-документы и необязательные toc.inc (оглавление) и name.txt
// (читаемое название языка).
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// Имена служебных файлов внутри языковой директории.
const (
	TOCFileName  = "toc.inc"
	NameFileName = "name.txt"
)

// ErrNotFound — документ отсутствует или не может быть прочитан.
var ErrNotFound = errors.New("документ не найден")

// Language — языковая директория, доступная для выбора.
type Language struct {
	// Code — имя директории (например, "en-US").
	Code string
	// Label — содержимое name.txt без пробелов по краям.
	Label string
	// HasLabel — name.txt присутствует.
	HasLabel bool
}

// Library — файлы справки поверх fs.FS.
// Все пути проверяются через fs.ValidPath, поэтому выйти за корень нельзя.
type Library struct {
	fsys fs.FS
	root string
}

// New создаёт Library для директории root на диске.
func New(root string) (*Library, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("корень справки %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("корень справки %s не является директорией", root)
	}
	return &Library{fsys: os.DirFS(root), root: root}, nil
}

// NewFromFS создаёт Library поверх произвольной fs.FS (используется в тестах).
func NewFromFS(fsys fs.FS) *Library {
	return &Library{fsys: fsys, root: "."}
}

// DirectoryExists сообщает, есть ли под корнем директория с таким именем.
// Вложенные пути и "." не считаются языками.
func (l *Library) DirectoryExists(name string) bool {
	if !isEntryName(name) {
		return false
	}
	info, err := fs.Stat(l.fsys, name)
	return err == nil && info.IsDir()
}

// ReadDocument читает {lang}/{name} целиком.
// Любая ошибка (нет файла, нет прав, директория, недопустимый путь)
// оборачивает ErrNotFound.
func (l *Library) ReadDocument(lang, name string) ([]byte, error) {
	if !isEntryName(lang) {
		return nil, fmt.Errorf("%w: недопустимый язык %q", ErrNotFound, lang)
	}
	p := path.Join(lang, name)
	if !fs.ValidPath(name) || !strings.HasPrefix(p, lang+"/") {
		return nil, fmt.Errorf("%w: недопустимое имя %q", ErrNotFound, name)
	}

	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, p, err)
	}
	return data, nil
}

// ReadTOC возвращает фрагмент оглавления языка, если он есть.
func (l *Library) ReadTOC(lang string) ([]byte, bool) {
	data, err := l.ReadDocument(lang, TOCFileName)
	if err != nil {
		return nil, false
	}
	return data, true
}

// NameLabel возвращает читаемое название языка из name.txt.
func (l *Library) NameLabel(lang string) (string, bool) {
	data, err := l.ReadDocument(lang, NameFileName)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

// Languages перечисляет языковые директории под корнем
// в лексикографическом порядке (порядок fs.ReadDir).
// Файлы в корне пропускаются.
func (l *Library) Languages() ([]Language, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("чтение корня справки %s: %w", l.root, err)
	}

	langs := make([]Language, 0, len(entries))
	for _, e := range entries {
		// Симлинки на директории тоже считаются языками
		if !l.DirectoryExists(e.Name()) {
			continue
		}
		lang := Language{Code: e.Name()}
		lang.Label, lang.HasLabel = l.NameLabel(e.Name())
		langs = append(langs, lang)
	}
	return langs, nil
}

// isEntryName — имя допустимо как элемент первого уровня под корнем.
func isEntryName(name string) bool {
	return name != "." && fs.ValidPath(name) && !strings.Contains(name, "/")
}
