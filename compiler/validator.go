package compiler

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// reservedNames are identifiers every generated module already binds.
var reservedNames = map[string]bool{
	"React":            true,
	"Controller":       true,
	"Metadata":         true,
	"Router":           true,
	"Views":            true,
	"App":              true,
	"Page":             true,
	"Object":           true,
	"Function":         true,
	"Promise":          true,
	"map":              true,
	"createScope":      true,
	"transformProxies": true,
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Warning describes a name in a compiled tree that will likely produce a
// broken or surprising module. Warnings never stop a run.
type Warning struct {
	Node    string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Node, w.Message)
}

// Validate checks the class names of pages and every component below them.
func Validate(pages []*Node) []Warning {
	var warnings []Warning
	components := make(map[string]bool)

	var visit func(n *Node)
	visit = func(n *Node) {
		warnings = append(warnings, validateClassName(n)...)
		if n.isComponent {
			components[n.className] = true
		}
		for _, c := range n.children {
			visit(c)
		}
	}
	for _, p := range pages {
		visit(p)
	}

	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)
	for i, name := range names {
		for _, similar := range findSimilarNames(name, names[i+1:]) {
			warnings = append(warnings, Warning{
				Node:    name,
				Message: fmt.Sprintf("component name is close to %q; both will be written as separate components", similar),
			})
		}
	}
	return warnings
}

func validateClassName(n *Node) []Warning {
	kind := "page"
	if n.isComponent {
		kind = "component"
	}

	switch {
	case n.className == "":
		return []Warning{{Node: n.name, Message: kind + " name has no letters or digits"}}
	case !identifierRe.MatchString(n.className):
		return []Warning{{Node: n.className, Message: kind + " class name is not a valid JavaScript identifier"}}
	case reservedNames[n.className]:
		return []Warning{{Node: n.className, Message: kind + " class name shadows an identifier of the generated module"}}
	}
	return nil
}

// levenshteinDistance is the number of single-character edits turning a
// into b.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	prevRow := make([]int, len(a)+1)
	currRow := make([]int, len(a)+1)
	for j := 0; j <= len(a); j++ {
		prevRow[j] = j
	}

	for i := 1; i <= len(b); i++ {
		currRow[0] = i
		for j := 1; j <= len(a); j++ {
			cost := 0
			if a[j-1] != b[i-1] {
				cost = 1
			}
			currRow[j] = min(
				currRow[j-1]+1,    // insertion
				prevRow[j]+1,      // deletion
				prevRow[j-1]+cost, // substitution
			)
		}
		prevRow, currRow = currRow, prevRow
	}
	return prevRow[len(a)]
}

// findSimilarNames returns the candidates within two edits of name, closest
// first.
func findSimilarNames(name string, candidates []string) []string {
	const threshold = 2

	type suggestion struct {
		name     string
		distance int
	}
	var suggestions []suggestion
	for _, c := range candidates {
		if dist := levenshteinDistance(strings.ToLower(name), strings.ToLower(c)); dist <= threshold {
			suggestions = append(suggestions, suggestion{c, dist})
		}
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].distance < suggestions[j].distance
	})

	result := make([]string, len(suggestions))
	for i, s := range suggestions {
		result[i] = s.name
	}
	return result
}
