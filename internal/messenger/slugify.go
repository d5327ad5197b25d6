package messenger

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Буквы, которые не раскладываются на базу и диакритику через NFD.
var slugReplacer = strings.NewReplacer(
	"ł", "l", "Ł", "L",
	"đ", "d", "Đ", "D",
	"ø", "o", "Ø", "O",
	"ß", "ss",
)

// Slugify приводит имя к форме для повторного поиска в ростере: нижний
// регистр, снятая диакритика. Символы вне таблиц проходят без изменений.
func Slugify(name string) string {
	// Трансформер не потокобезопасен, собирается на каждый вызов.
	stripDiacritics := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripDiacritics, name)
	if err != nil {
		stripped = name
	}
	return strings.ToLower(slugReplacer.Replace(stripped))
}
