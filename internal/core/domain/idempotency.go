package domain

import "strings"

// BuildIdempotencyKey scopes a client supplied key to a merchant and a function,
// so the same key reused on another function is a different request.
func BuildIdempotencyKey(merchantID, function, key string) string {
	return strings.Join([]string{merchantID, function, key}, ":")
}
