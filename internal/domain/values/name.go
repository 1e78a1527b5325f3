package values

import (
	"fmt"
	"regexp"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

const (
	nameMinLen = 3
	nameMaxLen = 32

	aliasMinLen = 3
	aliasMaxLen = 64
)

// CheckName validates a group or profile name: 3 to 32 characters from
// the letters, digits, underscore, hyphen alphabet.
func CheckName(name string) error {
	return checkIdentifier("name", name, nameMinLen, nameMaxLen)
}

// CheckAlias validates an identity alias: same alphabet as names but up
// to 64 characters.
func CheckAlias(alias string) error {
	return checkIdentifier("alias", alias, aliasMinLen, aliasMaxLen)
}

func checkIdentifier(kind, s string, minLen, maxLen int) error {
	if len(s) < minLen || len(s) > maxLen {
		return fmt.Errorf("%s must be %d to %d characters", kind, minLen, maxLen)
	}
	if !identifierPattern.MatchString(s) {
		return fmt.Errorf("%s may only contain letters, digits, underscore and hyphen", kind)
	}
	return nil
}
