// Package diff generates unified diffs between original and fixed file
// content, for dry-run output.
package diff

import (
	"fmt"
	"strings"
)

// LineKind indicates the type of a diff line.
type LineKind int

const (
	// Context is an unchanged line.
	Context LineKind = iota

	// Add is a line present only in the modified version.
	Add

	// Remove is a line present only in the original version.
	Remove
)

// Line is a single line in a diff hunk.
type Line struct {
	Kind    LineKind
	Content string
}

// Hunk is a single hunk in a unified diff.
type Hunk struct {
	// OriginalStart is the 1-based line number where the hunk starts in
	// the original; OriginalCount the number of original lines covered.
	OriginalStart int
	OriginalCount int

	// ModifiedStart and ModifiedCount are the same for the modified side.
	ModifiedStart int
	ModifiedCount int

	Lines []Line
}

// Diff is a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	Hunks []Hunk

	// Additions and Deletions count changed lines across all hunks.
	Additions int
	Deletions int
}

// contextLines is the number of context lines shown around changes.
const contextLines = 3

// Generate creates a unified diff between original and modified content.
// Returns nil if there are no changes.
func Generate(path string, original, modified []byte) *Diff {
	origLines := splitLines(original)
	modLines := splitLines(modified)

	hunks := computeHunks(origLines, modLines)
	if len(hunks) == 0 {
		return nil
	}

	var additions, deletions int
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case Add:
				additions++
			case Remove:
				deletions++
			}
		}
	}

	return &Diff{
		Path:      path,
		Hunks:     hunks,
		Additions: additions,
		Deletions: deletions,
	}
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified diff format.
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			switch line.Kind {
			case Context:
				fmt.Fprintf(&builder, " %s\n", line.Content)
			case Add:
				fmt.Fprintf(&builder, "+%s\n", line.Content)
			case Remove:
				fmt.Fprintf(&builder, "-%s\n", line.Content)
			}
		}
	}

	return builder.String()
}

// splitLines splits content into lines, dropping a trailing newline's
// empty remainder.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	lines := strings.Split(string(content), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// op is a single diff operation.
type op struct {
	kind    LineKind
	content string
}

// computeHunks computes diff hunks using an LCS-based algorithm.
func computeHunks(orig, mod []string) []Hunk {
	lcs := longestCommonSubsequence(orig, mod)

	ops := buildOps(orig, mod, lcs)
	if len(ops) == 0 {
		return nil
	}

	return groupIntoHunks(ops)
}

// buildOps builds the diff operation sequence from original, modified,
// and their LCS.
func buildOps(orig, mod, lcs []string) []op {
	var ops []op
	origIdx, modIdx, lcsIdx := 0, 0, 0

	for origIdx < len(orig) || modIdx < len(mod) {
		if lcsIdx < len(lcs) &&
			origIdx < len(orig) && modIdx < len(mod) &&
			orig[origIdx] == lcs[lcsIdx] && mod[modIdx] == lcs[lcsIdx] {
			ops = append(ops, op{kind: Context, content: orig[origIdx]})
			origIdx++
			modIdx++
			lcsIdx++
			continue
		}

		for origIdx < len(orig) && (lcsIdx >= len(lcs) || orig[origIdx] != lcs[lcsIdx]) {
			ops = append(ops, op{kind: Remove, content: orig[origIdx]})
			origIdx++
		}

		for modIdx < len(mod) && (lcsIdx >= len(lcs) || mod[modIdx] != lcs[lcsIdx]) {
			ops = append(ops, op{kind: Add, content: mod[modIdx]})
			modIdx++
		}
	}

	return ops
}

// groupIntoHunks groups diff operations into hunks with context lines,
// merging changes that are close together.
func groupIntoHunks(ops []op) []Hunk {
	type changeRange struct {
		start, end int
	}

	var ranges []changeRange
	inChange := false
	rangeStart := 0

	for opIdx, o := range ops {
		isChange := o.kind != Context
		if isChange && !inChange {
			rangeStart = opIdx
			inChange = true
		} else if !isChange && inChange {
			ranges = append(ranges, changeRange{rangeStart, opIdx})
			inChange = false
		}
	}
	if inChange {
		ranges = append(ranges, changeRange{rangeStart, len(ops)})
	}

	if len(ranges) == 0 {
		return nil
	}

	var hunks []Hunk

	for rangeIdx := 0; rangeIdx < len(ranges); {
		mergeEnd := rangeIdx + 1
		for mergeEnd < len(ranges) {
			gap := ranges[mergeEnd].start - ranges[mergeEnd-1].end
			if gap > contextLines*2 {
				break
			}
			mergeEnd++
		}

		hunk := buildHunk(ops, ranges[rangeIdx].start, ranges[mergeEnd-1].end)
		if len(hunk.Lines) > 0 {
			hunks = append(hunks, hunk)
		}

		rangeIdx = mergeEnd
	}

	return hunks
}

// buildHunk builds a single hunk from a range of operations, expanded to
// include surrounding context.
func buildHunk(ops []op, changeStart, changeEnd int) Hunk {
	start := changeStart - contextLines
	if start < 0 {
		start = 0
	}
	end := changeEnd + contextLines
	if end > len(ops) {
		end = len(ops)
	}

	hunk := Hunk{OriginalStart: 1, ModifiedStart: 1}

	for opIdx := range start {
		if ops[opIdx].kind != Add {
			hunk.OriginalStart++
		}
		if ops[opIdx].kind != Remove {
			hunk.ModifiedStart++
		}
	}

	for i := start; i < end; i++ {
		o := ops[i]
		hunk.Lines = append(hunk.Lines, Line{Kind: o.kind, Content: o.content})

		switch o.kind {
		case Context:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case Remove:
			hunk.OriginalCount++
		case Add:
			hunk.ModifiedCount++
		}
	}

	return hunk
}

// longestCommonSubsequence computes the LCS of two string slices.
func longestCommonSubsequence(orig, mod []string) []string {
	origLen, modLen := len(orig), len(mod)
	if origLen == 0 || modLen == 0 {
		return nil
	}

	dp := make([][]int, origLen+1)
	for idx := range dp {
		dp[idx] = make([]int, modLen+1)
	}

	for row := 1; row <= origLen; row++ {
		for col := 1; col <= modLen; col++ {
			if orig[row-1] == mod[col-1] {
				dp[row][col] = dp[row-1][col-1] + 1
			} else {
				dp[row][col] = max(dp[row-1][col], dp[row][col-1])
			}
		}
	}

	// Backtrack to recover the subsequence.
	lcs := make([]string, 0, dp[origLen][modLen])
	for row, col := origLen, modLen; row > 0 && col > 0; {
		switch {
		case orig[row-1] == mod[col-1]:
			lcs = append(lcs, orig[row-1])
			row--
			col--
		case dp[row-1][col] >= dp[row][col-1]:
			row--
		default:
			col--
		}
	}

	// Reverse into document order.
	for left, right := 0, len(lcs)-1; left < right; left, right = left+1, right-1 {
		lcs[left], lcs[right] = lcs[right], lcs[left]
	}

	return lcs
}
