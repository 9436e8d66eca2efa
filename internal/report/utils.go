package report

import "strings"

// sanitizeFilename turns a host name or IP literal into a safe file name part
func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		".", "_",
		":", "_",
		"%", "_",
		"/", "_",
		"\\", "_",
		" ", "_",
	)
	return replacer.Replace(strings.ToLower(s))
}
