package page

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dcplusplus/webhelp/internal/content"
)

func TestSplicePoint(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantPos int
		wantOK  bool
	}{
		{"простой body", "<html><body>x", len("<html><body>"), true},
		{"body с атрибутами", `<body class="x"> y`, len(`<body class="x">`), true},
		{"первое вхождение", "<body>a<body>b", len("<body>"), true},
		{"нет body", "<html><p>x</p></html>", 0, false},
		{"регистр учитывается", "<BODY>x", 0, false},
		{"тег не закрыт", "<html><body class='x'", 0, false},
		{"пустой документ", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, ok := SplicePoint([]byte(tt.doc))
			if pos != tt.wantPos || ok != tt.wantOK {
				t.Errorf("SplicePoint(%q) = %d, %v; ожидается %d, %v", tt.doc, pos, ok, tt.wantPos, tt.wantOK)
			}
		})
	}
}

func TestSplice_WithTOC(t *testing.T) {
	doc := []byte(`<html><body class="x"> content`)
	toc := []byte("[TOC]")
	sel := []byte("[SEL]")

	got, ok := Splice(doc, toc, sel)
	if !ok {
		t.Fatal("Splice: ожидается вставка")
	}
	want := `<html><body class="x">[TOC][SEL] content`
	if string(got) != want {
		t.Errorf("Splice = %q, ожидается %q", got, want)
	}
}

func TestSplice_WithoutTOC(t *testing.T) {
	got, ok := Splice([]byte("<body>tail"), nil, []byte("[SEL]"))
	if !ok || string(got) != "<body>[SEL]tail" {
		t.Errorf("Splice = %q, %v", got, ok)
	}
}

func TestSplice_NoBodyIsVerbatim(t *testing.T) {
	doc := []byte("<html><p>no body tag</p></html>")

	got, ok := Splice(doc, []byte("[TOC]"), []byte("[SEL]"))
	if ok {
		t.Error("Splice без <body: ожидается false")
	}
	if !bytes.Equal(got, doc) {
		t.Errorf("Splice должен вернуть документ без изменений, получено %q", got)
	}
}

func TestSplice_UnclosedBodyIsVerbatim(t *testing.T) {
	doc := []byte("<html><body class=")

	got, ok := Splice(doc, nil, []byte("[SEL]"))
	if ok || !bytes.Equal(got, doc) {
		t.Errorf("Splice = %q, %v; ожидается исходный документ", got, ok)
	}
}

func TestSplice_RenderedBlocks(t *testing.T) {
	ctx := context.Background()
	doc := []byte(`<html><head></head><body class="x"> content</body></html>`)

	toc, err := Render(ctx, TOCBlock([]byte("<b>toc</b>")))
	if err != nil {
		t.Fatalf("TOCBlock: %v", err)
	}
	sel, err := Render(ctx, SelectorForm("index.html", []content.Language{{Code: "en-US"}}, "en-US"))
	if err != nil {
		t.Fatalf("SelectorForm: %v", err)
	}

	got, ok := Splice(doc, toc, sel)
	if !ok {
		t.Fatal("Splice: ожидается вставка")
	}
	want := `<html><head></head><body class="x">` + string(toc) + string(sel) + ` content</body></html>`
	if string(got) != want {
		t.Errorf("Splice =\n%s\nожидается\n%s", got, want)
	}
}

func TestTOCBlock(t *testing.T) {
	got, err := Render(context.Background(), TOCBlock([]byte("<b>toc</b>")))
	if err != nil {
		t.Fatal(err)
	}
	want := "\n<div style=\"float: right; width: 25%; margin-left: 15px; padding: 10px 10px 10px 10px; background-color: #F0F0F0\">\n<b>toc</b>\n</div>"
	if string(got) != want {
		t.Errorf("TOCBlock =\n%q\nожидается\n%q", got, want)
	}
}

func TestSelectorForm(t *testing.T) {
	langs := []content.Language{
		{Code: "de"},
		{Code: "en-US", Label: "English", HasLabel: true},
		{Code: "fr", Label: "Français", HasLabel: true},
	}

	got, err := Render(context.Background(), SelectorForm("page.html", langs, "en-US"))
	if err != nil {
		t.Fatal(err)
	}

	want := "\n<div style=\"margin-bottom: 15px; padding: 10px 10px 10px 10px; background-color: #F0F0F0\">\n" +
		"<form method=\"post\" action=\"page.html\">\n" +
		"\tLanguage:\n" +
		"\t<select name=\"language\">\n" +
		"\t\t<option value=\"de\">de</option>\n" +
		"\t\t<option value=\"en-US\" selected=\"selected\">en-US: English</option>\n" +
		"\t\t<option value=\"fr\">fr: Français</option>\n" +
		"\t</select>\n" +
		"\t<input type=\"submit\" value=\"Change\"/>\n" +
		"</form>\n</div>\n\n"
	if string(got) != want {
		t.Errorf("SelectorForm =\n%q\nожидается\n%q", got, want)
	}
}

func TestSelectorForm_EscapesActionAndCodes(t *testing.T) {
	langs := []content.Language{{Code: `a"b`}}

	got, err := Render(context.Background(), SelectorForm(`x"><script>`, langs, "none"))
	if err != nil {
		t.Fatal(err)
	}
	s := string(got)
	if strings.Contains(s, "<script>") {
		t.Errorf("action не экранирован: %s", s)
	}
	if strings.Contains(s, `value="a"b"`) {
		t.Errorf("код языка не экранирован: %s", s)
	}
	if strings.Contains(s, "selected") {
		t.Errorf("ни один язык не должен быть выбран: %s", s)
	}
}

func TestSelectorForm_NoLanguages(t *testing.T) {
	got, err := Render(context.Background(), SelectorForm("index.html", nil, "en-US"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(got), "<option") {
		t.Errorf("без языков не должно быть option: %s", got)
	}
	if !strings.Contains(string(got), `<select name="language">`) {
		t.Errorf("форма должна содержать select: %s", got)
	}
}
