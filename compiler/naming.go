package compiler

import (
	"net/http"
	"strconv"
	"strings"
	"unicode"
)

// resolveStatusName maps a numeric name such as "404" to its HTTP status
// text. Other names, and numbers without a status text, are returned as is.
func resolveStatusName(name string) string {
	code, err := strconv.Atoi(strings.TrimSpace(name))
	if err != nil {
		return name
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return name
}

// splitWords breaks an identifier into words on separators and case changes:
// "blog-post", "blog_post", "BlogPost" and "blog post" all yield [blog post].
func splitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func pascal(words []string) string {
	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(upperFirst(w))
	}
	return sb.String()
}

func kebab(words []string) string {
	lower := make([]string, len(words))
	for i, w := range words {
		lower[i] = strings.ToLower(w)
	}
	return strings.Join(lower, "-")
}

// camelize lower-cases the first letter of a PascalCase identifier.
func camelize(s string) string {
	return lowerFirst(s)
}
