package utils

import (
	"strings"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/cases"
)

// FoldName reduces a display name to a search key: accents transliterated,
// case folded and inner whitespace collapsed, so "João  Pé" matches "joao pe".
func FoldName(name string) string {
	folded := cases.Fold().String(unidecode.Unidecode(name))
	return strings.Join(strings.Fields(folded), " ")
}
