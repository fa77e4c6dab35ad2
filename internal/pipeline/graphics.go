package pipeline

import (
	"regexp"
	"slices"
	"strings"
)

// graphicsCommand matches \includegraphics, its optional [..] argument and
// the opening brace of the path argument.
const graphicsCommand = `(\\includegraphics(?:\[[^\]]*\])?\{)`

// NormalizeGraphicsPaths rewrites \includegraphics paths under any of the
// source directories to the target directory and strips a recognized image
// extension, leaving the path extensionless:
//
//	\includegraphics[width=3in]{Chapters/diagram.pdf}
//	\includegraphics[width=3in]{figures/diagram}
//
// The optional argument is kept verbatim. It returns the number of
// rewritten references.
func NormalizeGraphicsPaths(doc string, rules Rules) (string, int) {
	if len(rules.GraphicsSourceDirs) == 0 || !strings.Contains(doc, `\includegraphics`) {
		return doc, 0
	}

	re := graphicsPattern(rules.GraphicsSourceDirs, rules.GraphicsExtensions)
	return replaceGraphics(doc, re, func(stem string) string {
		return rules.GraphicsTargetDir + "/" + stem
	})
}

// ForceGraphicsExtension rewrites every \includegraphics path under the
// target directory so that it ends in the forced extension, replacing a
// recognized extension if present. The forced extension always counts as
// recognized, so applying it twice is the same as applying it once.
func ForceGraphicsExtension(doc string, rules Rules) (string, int) {
	if rules.GraphicsTargetDir == "" || rules.ForcedExtension == "" || !strings.Contains(doc, `\includegraphics`) {
		return doc, 0
	}

	exts := rules.GraphicsExtensions
	if !slices.Contains(exts, rules.ForcedExtension) {
		exts = append(slices.Clip(exts), rules.ForcedExtension)
	}

	re := graphicsPattern([]string{rules.GraphicsTargetDir}, exts)
	return replaceGraphics(doc, re, func(stem string) string {
		return rules.GraphicsTargetDir + "/" + stem + "." + rules.ForcedExtension
	})
}

// graphicsPattern builds a pattern capturing the command prefix (group 1)
// and the path stem below one of dirs (group 2). Surrounding whitespace
// and a trailing recognized extension are matched but not captured.
func graphicsPattern(dirs, exts []string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(graphicsCommand)
	b.WriteString(`\s*(?:`)
	b.WriteString(alternation(dirs))
	b.WriteString(`)/([^}\s]+?)`)
	if len(exts) > 0 {
		b.WriteString(`(?:\.(?:`)
		b.WriteString(alternation(exts))
		b.WriteString(`))?`)
	}
	b.WriteString(`\s*\}`)
	return regexp.MustCompile(b.String())
}

// alternation joins literals into a regexp alternation.
func alternation(literals []string) string {
	quoted := make([]string, 0, len(literals))
	for _, l := range literals {
		quoted = append(quoted, regexp.QuoteMeta(l))
	}
	return strings.Join(quoted, "|")
}

// replaceGraphics rebuilds each match as prefix + path(stem) + "}".
// Replacement text is written literally, so "$" in configured names is safe.
func replaceGraphics(doc string, re *regexp.Regexp, path func(stem string) string) (string, int) {
	matches := re.FindAllStringSubmatchIndex(doc, -1)
	if len(matches) == 0 {
		return doc, 0
	}

	var b strings.Builder
	b.Grow(len(doc) + len(matches)*8)

	last := 0
	for _, m := range matches {
		b.WriteString(doc[last:m[0]])
		b.WriteString(doc[m[2]:m[3]])
		b.WriteString(path(doc[m[4]:m[5]]))
		b.WriteByte('}')
		last = m[1]
	}
	b.WriteString(doc[last:])

	return b.String(), len(matches)
}
