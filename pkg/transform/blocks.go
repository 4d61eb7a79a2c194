package transform

// SpaceBlocks inserts blank lines around headings and list runs.
//
// A heading gets a blank line before it unless it opens the file or the
// previously emitted line is already blank, and a blank line after it
// unless the next line is blank or itself a heading. A list run gets a
// blank line before its first item and after its last one, again only
// when the neighbor is non-blank.
//
// Lines inside fenced code blocks are passed through untouched; a shell
// comment or a dashed line in a code sample must not be spaced as if it
// were markdown.
//
// Lookback is against the emitted output rather than the original line
// sequence, so an insertion made for an earlier construct is visible to
// the next one and the pass stays idempotent.
func SpaceBlocks(lines []string, headings, lists bool) []string {
	if !headings && !lists {
		return lines
	}

	out := make([]string, 0, len(lines))
	inFence := false

	for i, line := range lines {
		kind := Classify(line)

		if kind == LineFence {
			inFence = !inFence
			out = append(out, line)
			continue
		}
		if inFence {
			out = append(out, line)
			continue
		}

		switch kind {
		case LineHeading:
			if !headings {
				out = append(out, line)
				continue
			}

			if len(out) > 0 && !isBlank(out[len(out)-1]) {
				out = append(out, "")
			}
			out = append(out, line)

			if i+1 < len(lines) {
				if next := Classify(lines[i+1]); next != LineBlank && next != LineHeading {
					out = append(out, "")
				}
			}

		case LineListItem:
			if !lists {
				out = append(out, line)
				continue
			}

			firstOfRun := i == 0 || Classify(lines[i-1]) != LineListItem
			if firstOfRun && len(out) > 0 && !isBlank(out[len(out)-1]) {
				out = append(out, "")
			}
			out = append(out, line)

			if i+1 < len(lines) {
				if next := Classify(lines[i+1]); next != LineBlank && next != LineListItem {
					out = append(out, "")
				}
			}

		default:
			out = append(out, line)
		}
	}

	return out
}
