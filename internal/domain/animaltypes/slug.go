package animaltypes

import (
	"strings"

	"github.com/gosimple/slug"
)

// Slugify deriva el slug del nombre. Es determinista y translitera cirílico
// ("Собака" -> "sobaka").
func Slugify(name string) string {
	return slug.Make(strings.TrimSpace(name))
}
