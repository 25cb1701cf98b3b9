package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_CleanTree(t *testing.T) {
	n := page(`<div><header wfr-c="nav">x</header><footer wfr-c="site-footer">y</footer></div>`)

	assert.Empty(t, Validate([]*Node{n}))
}

func TestValidate_ClassNames(t *testing.T) {
	tests := []struct {
		name string
		page *Node
		want []Warning
	}{
		{
			name: "digits without status text",
			page: NewNode(Options{Name: "999"}),
			want: []Warning{{Node: "999", Message: "page class name is not a valid JavaScript identifier"}},
		},
		{
			name: "reserved component",
			page: page(`<div><p wfr-c="router">x</p></div>`),
			want: []Warning{{Node: "Router", Message: "component class name shadows an identifier of the generated module"}},
		},
		{
			name: "punctuation only",
			page: page(`<div><p wfr-c="--">x</p></div>`),
			want: []Warning{{Node: "view", Message: "component name has no letters or digits"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate([]*Node{tt.page}))
		})
	}
}

func TestValidate_SimilarComponentNames(t *testing.T) {
	n := page(`<div><p wfr-c="card">a</p><p wfr-c="cards">b</p><p wfr-c="navigation">c</p></div>`)

	warnings := Validate([]*Node{n})

	assert.Equal(t, []Warning{{
		Node:    "Card",
		Message: `component name is close to "Cards"; both will be written as separate components`,
	}}, warnings)
	assert.Equal(t, `Card: component name is close to "Cards"; both will be written as separate components`, warnings[0].String())
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("card", "card"))
	assert.Equal(t, 1, levenshteinDistance("card", "cards"))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
	assert.Equal(t, 4, levenshteinDistance("", "four"))
}
