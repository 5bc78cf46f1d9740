package httpclient

import (
	"net/url"
	"strings"
)

const redacted = "[REDACTED]"

// sensitiveParams are substrings of query parameter names whose values never
// reach the logs. Matched case-insensitively.
var sensitiveParams = []string{
	"key",
	"token",
	"password",
	"secret",
	"auth",
	"credential",
	"signature",
}

// sanitizeURL renders u for logging with credentials removed: sensitive
// query values and any userinfo password are replaced by [REDACTED].
func sanitizeURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	safe := *u
	if safe.User != nil {
		if _, hasPassword := safe.User.Password(); hasPassword {
			safe.User = url.UserPassword(safe.User.Username(), redacted)
		}
	}

	if safe.RawQuery != "" {
		q := safe.Query()
		for param := range q {
			if isSensitiveParam(param) {
				q.Set(param, redacted)
			}
		}
		safe.RawQuery = q.Encode()
	}

	return safe.String()
}

func isSensitiveParam(param string) bool {
	lower := strings.ToLower(param)
	for _, sensitive := range sensitiveParams {
		if strings.Contains(lower, sensitive) {
			return true
		}
	}
	return false
}
