package shell

import (
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/doeshing/kittysh/internal/domain"
)

const pathPlaceholder = "{path}"

// PosixTemplate is the block sourced by bash and zsh rc files.
const PosixTemplate = domain.BeginMarker + "\n" +
	"if test -e " + pathPlaceholder + "; then source " + pathPlaceholder + "; fi\n" +
	domain.EndMarker + "\n"

var markerBlock = regexp.MustCompile(
	`(?ms)^` + regexp.QuoteMeta(domain.BeginMarker) + `.+?^` + regexp.QuoteMeta(domain.EndMarker),
)

// InjectStanza returns rc with every existing marker block removed and a
// fresh block, rendered from template with path quoted, appended after two
// newlines. Content outside the markers is preserved apart from trailing
// whitespace. An empty rc still gets the leading separator.
func InjectStanza(rc, template, path string) string {
	return stripBlocks(rc) + "\n\n" + strings.ReplaceAll(template, pathPlaceholder, `"`+path+`"`)
}

// RemoveStanza drops every marker block from rc. The second result is false
// when rc contained no block.
func RemoveStanza(rc string) (string, bool) {
	if !HasStanza(rc) {
		return rc, false
	}
	remainder := stripBlocks(rc)
	if remainder == "" {
		return "", true
	}
	return remainder + "\n", true
}

// HasStanza reports whether rc contains a complete marker block.
func HasStanza(rc string) bool {
	return markerBlock.MatchString(rc)
}

func stripBlocks(rc string) string {
	return strings.TrimRightFunc(markerBlock.ReplaceAllLiteralString(rc, ""), unicode.IsSpace)
}

// FriendlyPath rewrites paths under home as $HOME/<rest> so the stanza keeps
// working on machines sharing a home layout but not its absolute location.
func FriendlyPath(path, home string) string {
	home = strings.TrimRight(home, string(os.PathSeparator))
	if home == "" || home == "." {
		return path
	}
	prefix := home + string(os.PathSeparator)
	if strings.HasPrefix(path, prefix) {
		return "$HOME/" + strings.TrimPrefix(path, prefix)
	}
	return path
}
