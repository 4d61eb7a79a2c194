// Package verify guards against data loss when rewriting Markdown files.
// It parses original and fixed content with goldmark and compares the
// block structure: a fix that only inserts formatting whitespace and fence
// tags must not lose headings, list items, or code blocks.
package verify

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Counts summarizes the block structure of a document.
type Counts struct {
	// Headings is the number of heading blocks.
	Headings int

	// ListItems is the number of list item blocks.
	ListItems int

	// CodeBlocks is the number of fenced code blocks.
	CodeBlocks int
}

// Count parses content and tallies its block structure.
func Count(content []byte) Counts {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(content))

	var counts Counts
	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node.(type) {
		case *ast.Heading:
			counts.Headings++
		case *ast.ListItem:
			counts.ListItems++
		case *ast.FencedCodeBlock:
			counts.CodeBlocks++
		}
		return ast.WalkContinue, nil
	})

	return counts
}

// StructurePreserved reports whether fixed keeps the block structure of
// original. Headings and code blocks must match exactly. List items may
// grow: inserting a blank line before a list can promote text that the
// parser previously folded into a paragraph, which is the intended effect
// of the spacing fix, not a loss.
func StructurePreserved(original, fixed []byte) bool {
	before := Count(original)
	after := Count(fixed)

	return before.Headings == after.Headings &&
		before.CodeBlocks == after.CodeBlocks &&
		after.ListItems >= before.ListItems
}
