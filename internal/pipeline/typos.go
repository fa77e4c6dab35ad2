package pipeline

import "strings"

// NormalizeEnvironmentTypos replaces misspelled environment delimiters
// with the correct environment name, for both opening and closing forms.
func NormalizeEnvironmentTypos(doc string, rules Rules) string {
	if len(rules.EnvironmentAliases) == 0 {
		return doc
	}

	pairs := make([]string, 0, len(rules.EnvironmentAliases)*4)
	for _, alias := range rules.EnvironmentAliases {
		if alias == "" || alias == rules.Environment {
			continue
		}
		pairs = append(pairs,
			endMarker(alias), endMarker(rules.Environment),
			beginMarker(alias), beginMarker(rules.Environment),
		)
	}
	if len(pairs) == 0 {
		return doc
	}

	return strings.NewReplacer(pairs...).Replace(doc)
}
