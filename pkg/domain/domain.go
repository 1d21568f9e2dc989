package domain

import "strings"

// ExtractRootDomain returns the last two labels of name, e.g.
// "sub.example.com" becomes "example.com". Names with fewer than two labels
// are returned unchanged. It does not know about public suffixes.
func ExtractRootDomain(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) < 2 {
		return name
	}
	return strings.Join(parts[len(parts)-2:], ".")
}
