package pipeline

import "strings"

// NormalizeCitations rewrites \<from>{ to \<to>{ and returns the number of
// rewrites. Matching requires the opening brace right after the command
// name, so longer commands sharing the prefix (\citep, \citeauthor) and
// commands with an optional argument (\cite[p.~3]{...}) are left alone.
func NormalizeCitations(doc string, rules Rules) (string, int) {
	if rules.CiteFrom == "" || rules.CiteFrom == rules.CiteTo {
		return doc, 0
	}

	from := `\` + rules.CiteFrom + `{`
	n := strings.Count(doc, from)
	if n == 0 {
		return doc, 0
	}
	return strings.ReplaceAll(doc, from, `\`+rules.CiteTo+`{`), n
}
