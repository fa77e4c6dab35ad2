package pipeline

import (
	"fmt"
	"strings"
)

// Occurrence is one attributed quotation found in a document.
type Occurrence struct {
	Attribution string // raw attribution argument, may contain balanced braces
	Body        string // raw text between the argument and the closing marker
	Start       int    // offset of the opening marker
	End         int    // offset just past the closing marker
}

// RewriteChapquotes replaces every attributed quotation environment with a
// quote block followed by a right-aligned, em-dash prefixed attribution:
//
//	\begin{chapquote}{Ada Lovelace}
//	The Analytical Engine weaves algebra.
//	\end{chapquote}
//
// becomes
//
//	\begin{quote}
//	The Analytical Engine weaves algebra.
//	\end{quote}
//	\begin{flushright}
//	— Ada Lovelace
//	\end{flushright}
//
// Occurrences are rewritten left to right with a single forward cursor.
// It returns the number of rewritten occurrences. Any parse error aborts
// the whole rewrite; no partially rewritten document is returned.
func RewriteChapquotes(doc string, rules Rules) (string, int, error) {
	occ, found, err := FindChapquote(doc, 0, rules)
	if err != nil {
		return "", 0, err
	}
	if !found {
		return doc, 0, nil
	}

	var b strings.Builder
	b.Grow(len(doc) + 64)

	cursor, n := 0, 0
	for found {
		b.WriteString(doc[cursor:occ.Start])
		writeQuote(&b, occ)
		cursor = occ.End
		n++

		occ, found, err = FindChapquote(doc, cursor, rules)
		if err != nil {
			return "", n, err
		}
	}
	b.WriteString(doc[cursor:])

	return b.String(), n, nil
}

// FindChapquote finds the first attributed quotation at or after offset from.
// It reports false when no opening marker remains.
func FindChapquote(doc string, from int, rules Rules) (Occurrence, bool, error) {
	begin := beginMarker(rules.Environment)
	end := endMarker(rules.Environment)
	open := begin + "{"

	i := strings.Index(doc[from:], open)
	if i < 0 {
		return Occurrence{}, false, nil
	}
	start := from + i

	attrStart := start + len(open)
	attrEnd := matchingBrace(doc, attrStart)
	if attrEnd < 0 {
		return Occurrence{}, false, fmt.Errorf("%w: %s at line %d",
			ErrUnbalancedBraces, begin, lineAt(doc, start))
	}

	bodyStart := attrEnd + 1
	k := strings.Index(doc[bodyStart:], end)
	if k < 0 {
		return Occurrence{}, false, fmt.Errorf("%w: %s for %s at line %d",
			ErrUnterminatedEnvironment, end, begin, lineAt(doc, start))
	}
	bodyEnd := bodyStart + k

	body := doc[bodyStart:bodyEnd]
	if j := strings.Index(body, begin); j >= 0 {
		return Occurrence{}, false, fmt.Errorf("%w: %s at line %d opened inside %s at line %d",
			ErrNestedEnvironment, begin, lineAt(doc, bodyStart+j), begin, lineAt(doc, start))
	}

	return Occurrence{
		Attribution: doc[attrStart:attrEnd],
		Body:        body,
		Start:       start,
		End:         bodyEnd + len(end),
	}, true, nil
}

// matchingBrace returns the offset of the brace closing the group whose
// content starts at pos, or -1 if the document ends first.
// Depth starts at 1: the opening brace sits just before pos.
func matchingBrace(s string, pos int) int {
	depth := 1
	for i := pos; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// writeQuote emits the quote and flushright blocks for one occurrence.
func writeQuote(b *strings.Builder, occ Occurrence) {
	b.WriteString("\\begin{quote}\n")
	b.WriteString(strings.TrimSpace(occ.Body))
	b.WriteString("\n\\end{quote}\n")
	b.WriteString("\\begin{flushright}\n")
	b.WriteString("— ")
	b.WriteString(strings.TrimSpace(occ.Attribution))
	b.WriteString("\n\\end{flushright}\n")
}

// lineAt returns the 1-based line number of offset.
func lineAt(s string, offset int) int {
	return strings.Count(s[:offset], "\n") + 1
}
