package repl

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/tmpl/tmpl"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{
	"help", "list", "get", "set", "unset", "meta",
	"render", "edit", "clear", "quit",
}

// keywords are offered alongside the top-level context keys in eval mode.
var keywords = []string{"foreach", "requires"}

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes: whitespace, the path separator, scope parentheses, string quotes
// and the foreach colon. Hyphens belong to identifiers (e.g. log-level).
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t', '\n',
		'(', ')', '"', ':':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary (after a space,
// between dots, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// parentPath returns the dotted path leading up to the current word. For
// input `"x" server.http.ho` with the word "ho", the parent path is
// "server.http". Returns "" for top-level words.
func parentPath(input string, wordStart int) string {
	prefix := input[:wordStart]
	if !strings.HasSuffix(prefix, ".") {
		return ""
	}

	prefix = strings.TrimRight(prefix, ".")

	pos := len(prefix)

	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(prefix[:pos])
		if r != '.' && isWordBoundary(r) {
			break
		}

		pos -= size
	}

	return prefix[pos:]
}

// childCandidates returns the names that complete a path below parent. For
// an empty parent these are the top-level context keys plus the template
// keywords; otherwise the keys or indices of the container at parent.
func childCandidates(root tmpl.Value, parent string) []string {
	if parent == "" {
		names := slices.Clone(keywords)

		return append(names, childNames(root)...)
	}

	path, err := tmpl.ParsePath(parent)
	if err != nil {
		return nil
	}

	node, ok := tmpl.Lookup(root, path)
	if !ok {
		return nil
	}

	return childNames(node)
}

// childNames lists the members of a container: sorted object keys or array
// indices.
func childNames(v tmpl.Value) []string {
	switch v := v.(type) {
	case tmpl.Object:
		return v.Keys()

	case tmpl.Array:
		names := make([]string, len(v))
		for i := range v {
			names[i] = strconv.Itoa(i)
		}

		return names
	}

	return nil
}

// computeMatches calculates the fuzzy match results for the word at the cursor.
// It returns the matches (ranked best-first), the candidate list, and the word
// boundaries. When the current word is empty at the top level, it returns nil
// matches. When the word is empty after a dot, it returns all children.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, wordStart, wordEnd := wordBounds(input, cursor)

	if m.mode == modeCtrl {
		// Only the command name completes.
		if word == "" || strings.ContainsAny(input[:wordStart], " \t") {
			return nil, nil, wordStart, wordEnd
		}

		candidates = ctrlCommands
	} else {
		parent := parentPath(input, wordStart)
		candidates = childCandidates(m.tmpl.Context(), parent)

		// An empty word completes only after a dot, so the hint stays visible
		// on an empty line.
		if word == "" {
			if parent == "" || len(candidates) == 0 {
				return nil, nil, wordStart, wordEnd
			}

			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, candidates, wordStart, wordEnd
		}
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. The selected candidate (when tabbing) uses
// the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Keywords are italicized.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	if slices.Contains(keywords, match.Str) {
		base, highlight = base.Italic(true), highlight.Italic(true)
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}

// previewWidth bounds the text shown for a value by the list command.
const previewWidth = 40

// formatPreview returns a one-line summary of a context value.
func formatPreview(v tmpl.Value) string {
	switch v := v.(type) {
	case tmpl.Object:
		return "{ " + strconv.Itoa(len(v)) + " keys }"

	case tmpl.Array:
		return "[ " + strconv.Itoa(len(v)) + " items ]"

	case tmpl.String:
		s := strconv.Quote(string(v))
		if len(s) > previewWidth {
			return s[:previewWidth-3] + "..."
		}

		return s

	case tmpl.Number:
		return v.String()

	case tmpl.Bool:
		return strconv.FormatBool(bool(v))

	default:
		return "null"
	}
}
