// Пакет page — сборка страницы справки: вставка оглавления и формы
// выбора языка сразу после открывающего тега <body ...>.
package page

import "bytes"

var bodyTag = []byte("<body")

// SplicePoint возвращает позицию сразу после символа '>', закрывающего
// первый тег <body (регистр учитывается). false — тега нет или он не закрыт.
func SplicePoint(document []byte) (int, bool) {
	start := bytes.Index(document, bodyTag)
	if start < 0 {
		return 0, false
	}
	end := bytes.IndexByte(document[start:], '>')
	if end < 0 {
		return 0, false
	}
	return start + end + 1, true
}

// Splice собирает head + tocBlock + selectorBlock + tail.
// nil tocBlock означает отсутствие оглавления. Если точки вставки нет,
// документ возвращается без изменений и false.
func Splice(document, tocBlock, selectorBlock []byte) ([]byte, bool) {
	pos, ok := SplicePoint(document)
	if !ok {
		return document, false
	}

	out := make([]byte, 0, len(document)+len(tocBlock)+len(selectorBlock))
	out = append(out, document[:pos]...)
	if tocBlock != nil {
		out = append(out, tocBlock...)
	}
	out = append(out, selectorBlock...)
	out = append(out, document[pos:]...)
	return out, true
}
