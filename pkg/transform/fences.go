package transform

// SpaceFences inserts blank lines around fenced code blocks.
//
// Unlike the spacing rules for headings and lists, this pass tracks fence
// open/close state: an opening fence gets a blank line before it and a
// closing fence gets one after it, while block interiors are never
// touched. Spacing a fence against an adjacent fence line is skipped, so
// empty code blocks and back-to-back blocks stay as written.
func SpaceFences(lines []string) []string {
	out := make([]string, 0, len(lines))
	inFence := false

	for i, line := range lines {
		if Classify(line) != LineFence {
			out = append(out, line)
			continue
		}

		opening := !inFence
		inFence = !inFence

		if opening {
			if len(out) > 0 && !isBlank(out[len(out)-1]) && Classify(out[len(out)-1]) != LineFence {
				out = append(out, "")
			}
			out = append(out, line)
			continue
		}

		out = append(out, line)
		if i+1 < len(lines) {
			if next := Classify(lines[i+1]); next != LineBlank && next != LineFence {
				out = append(out, "")
			}
		}
	}

	return out
}
