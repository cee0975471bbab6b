package util

import (
	"strings"
	"unicode"
)

// ToMemberCase converts a declared member name to lowerCamel form.
// A leading run of capitals is lowered except for its last letter when
// more characters follow, which keeps the acronym boundary:
//
//	"Name"        -> "name"
//	"Id"          -> "id"
//	"URLPath"     -> "urlPath"
//	"ID"          -> "id"
//	"HTTP2Client" -> "httP2Client"
//	"@class"      -> "class"
func ToMemberCase(name string) string {
	name = strings.TrimPrefix(name, "@")
	runes := []rune(name)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return name
	}

	for i := range runes {
		if i == 1 && !unicode.IsUpper(runes[i]) {
			break
		}
		// Stop at the capital that starts the next word
		if i > 0 && i+1 < len(runes) && !unicode.IsUpper(runes[i+1]) {
			break
		}
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
