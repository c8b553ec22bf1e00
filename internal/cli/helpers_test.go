package cli

import "regexp"

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripStyles(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
