package utils

import (
	"strings"
)

// NormalizeBranchCode trims and upper-cases a branch code so "jr " and "JR" match
func NormalizeBranchCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizePhone strips spaces and dashes from a customer phone number
func NormalizePhone(phone string) string {
	r := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	return r.Replace(strings.TrimSpace(phone))
}

// EscapeLike escapes LIKE wildcards so user input matches literally
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
