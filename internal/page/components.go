// components.go — templ-компоненты вставляемых блоков: оглавление и форма выбора языка.
package page

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dcplusplus/webhelp/internal/content"
)

// ErrorBody — фиксированный ответ при отсутствии документа.
const ErrorBody = `Error. <a href="https://dcplusplus.sourceforge.io/">Click here to go back to the main DC++ site.</a>`

const (
	tocStyle      = "float: right; width: 25%; margin-left: 15px; padding: 10px 10px 10px 10px; background-color: #F0F0F0"
	selectorStyle = "margin-bottom: 15px; padding: 10px 10px 10px 10px; background-color: #F0F0F0"
)

// TOCBlock оборачивает фрагмент toc.inc в плавающий блок справа.
// Фрагмент формируется сборкой справки и выводится как есть.
func TOCBlock(fragment []byte) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("\n<div style=\"" + tocStyle + "\">\n")
		b.Write(fragment)
		b.WriteString("\n</div>")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// SelectorForm — форма выбора языка. action — имя текущего документа,
// чтобы повторная отправка вела на ту же страницу; current отмечается selected.
// Коды языков и action экранируются, названия из name.txt выводятся как есть.
func SelectorForm(action string, languages []content.Language, current string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("\n<div style=\"" + selectorStyle + "\">\n")
		b.WriteString("<form method=\"post\" action=\"" + templ.EscapeString(action) + "\">\n")
		b.WriteString("\tLanguage:\n")
		b.WriteString("\t<select name=\"language\">\n")
		for _, lang := range languages {
			code := templ.EscapeString(lang.Code)
			b.WriteString("\t\t<option value=\"" + code + "\"")
			if lang.Code == current {
				b.WriteString(" selected=\"selected\"")
			}
			b.WriteString(">" + code)
			if lang.HasLabel {
				b.WriteString(": " + lang.Label)
			}
			b.WriteString("</option>\n")
		}
		b.WriteString("\t</select>\n")
		b.WriteString("\t<input type=\"submit\" value=\"Change\"/>\n")
		b.WriteString("</form>\n</div>\n\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Render отрисовывает компонент в байты.
func Render(ctx context.Context, c templ.Component) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
