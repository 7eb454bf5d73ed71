package soap

import (
	"regexp"
	"strings"
)

const redactedValue = "[REDACTED]"

// sensitiveElements are masked in logged envelopes, whatever their prefix.
var sensitiveElements = []string{
	"number",
	"cvx",
	"password",
	"accessKey",
	"cardholder",
}

var sensitivePattern = regexp.MustCompile(
	`(<(?:[\w-]+:)?(?:` + strings.Join(sensitiveElements, "|") + `)(?:\s[^>]*)?>)([^<]*)(</)`,
)

// Redact masks card and credential values in an XML document for logging.
func Redact(doc []byte) string {
	return sensitivePattern.ReplaceAllString(string(doc), "${1}"+redactedValue+"${3}")
}
