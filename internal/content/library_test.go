package content

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

// testFS — дерево справки из трёх языков и служебного файла в корне.
func testFS() fstest.MapFS {
	return fstest.MapFS{
		"en-US/index.html":   {Data: []byte("<html><body>en</body></html>")},
		"en-US/toc.inc":      {Data: []byte("<ul><li>toc</li></ul>")},
		"en-US/name.txt":     {Data: []byte("English\n")},
		"fr/index.html":      {Data: []byte("<html><body>fr</body></html>")},
		"fr/sub/page.html":   {Data: []byte("nested")},
		"sv-SE/index.html":   {Data: []byte("<html><body>sv</body></html>")},
		"sv-SE/name.txt":     {Data: []byte("  Svenska  ")},
		"robots.txt":         {Data: []byte("User-agent: *")},
		"empty":              {Mode: fs.ModeDir | 0o755},
		"en-US/images/a.png": {Data: []byte{0x89, 'P', 'N', 'G'}},
	}
}

func TestDirectoryExists(t *testing.T) {
	lib := NewFromFS(testFS())

	tests := []struct {
		name string
		want bool
	}{
		{"en-US", true},
		{"fr", true},
		{"empty", true},
		{"de", false},
		{"robots.txt", false},
		{".", false},
		{"", false},
		{"..", false},
		{"en-US/images", false},
		{"../en-US", false},
	}

	for _, tt := range tests {
		if got := lib.DirectoryExists(tt.name); got != tt.want {
			t.Errorf("DirectoryExists(%q) = %v, ожидается %v", tt.name, got, tt.want)
		}
	}
}

func TestReadDocument(t *testing.T) {
	lib := NewFromFS(testFS())

	data, err := lib.ReadDocument("fr", "index.html")
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if string(data) != "<html><body>fr</body></html>" {
		t.Errorf("содержимое = %q", data)
	}

	nested, err := lib.ReadDocument("fr", "sub/page.html")
	if err != nil {
		t.Fatalf("ReadDocument вложенного документа: %v", err)
	}
	if string(nested) != "nested" {
		t.Errorf("содержимое = %q", nested)
	}
}

func TestReadDocument_NotFound(t *testing.T) {
	lib := NewFromFS(testFS())

	tests := []struct {
		lang string
		name string
	}{
		{"fr", "missing.html"},
		{"de", "index.html"},
		{"en-US", "images"},
		{"en-US", "../fr/index.html"},
		{"en-US", "/etc/passwd"},
		{"en-US", "."},
		{"en-US", ""},
		{"..", "index.html"},
		{"", "index.html"},
	}

	for _, tt := range tests {
		_, err := lib.ReadDocument(tt.lang, tt.name)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("ReadDocument(%q, %q): ожидается ErrNotFound, получено %v", tt.lang, tt.name, err)
		}
	}
}

func TestReadTOC(t *testing.T) {
	lib := NewFromFS(testFS())

	toc, ok := lib.ReadTOC("en-US")
	if !ok {
		t.Fatal("ReadTOC(en-US): оглавление должно существовать")
	}
	if string(toc) != "<ul><li>toc</li></ul>" {
		t.Errorf("toc = %q", toc)
	}

	if _, ok := lib.ReadTOC("fr"); ok {
		t.Error("ReadTOC(fr): оглавления нет, ожидается false")
	}
}

func TestNameLabel(t *testing.T) {
	lib := NewFromFS(testFS())

	label, ok := lib.NameLabel("sv-SE")
	if !ok || label != "Svenska" {
		t.Errorf("NameLabel(sv-SE) = %q, %v; ожидается Svenska, true", label, ok)
	}

	if _, ok := lib.NameLabel("fr"); ok {
		t.Error("NameLabel(fr): name.txt нет, ожидается false")
	}
}

func TestLanguages(t *testing.T) {
	lib := NewFromFS(testFS())

	langs, err := lib.Languages()
	if err != nil {
		t.Fatalf("Languages: %v", err)
	}

	want := []Language{
		{Code: "empty"},
		{Code: "en-US", Label: "English", HasLabel: true},
		{Code: "fr"},
		{Code: "sv-SE", Label: "Svenska", HasLabel: true},
	}
	if len(langs) != len(want) {
		t.Fatalf("len(Languages) = %d, ожидается %d: %+v", len(langs), len(want), langs)
	}
	for i := range want {
		if langs[i] != want[i] {
			t.Errorf("Languages[%d] = %+v, ожидается %+v", i, langs[i], want[i])
		}
	}
}

func TestNew_OnDisk(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "en-US"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "en-US", "index.html"), []byte("disk"), 0o644); err != nil {
		t.Fatal(err)
	}

	lib, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data, err := lib.ReadDocument("en-US", "index.html")
	if err != nil || string(data) != "disk" {
		t.Errorf("ReadDocument = %q, %v", data, err)
	}

	if _, err := New(filepath.Join(root, "missing")); err == nil {
		t.Error("New для несуществующей директории должен вернуть ошибку")
	}
	if _, err := New(filepath.Join(root, "en-US", "index.html")); err == nil {
		t.Error("New для файла должен вернуть ошибку")
	}
}
