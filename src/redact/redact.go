// Package redact masks secrets in key/value pairs shown on the debug page.
// Masking is display-time obfuscation: reveal-mode values still travel to
// the browser so an operator can unmask them.
package redact

import (
	"net/url"
	"strings"

	"tracepage/src/fallback"
)

// Mask is the fixed replacement shown for hidden values.
const Mask = "********"

// Mode tells the renderer how a value was treated.
type Mode int

const (
	// Plain values are shown verbatim.
	Plain Mode = iota
	// Reveal values are masked but carry the raw value for click-to-reveal.
	Reveal
	// Fixed values had a secret component replaced; the secret is gone.
	Fixed
)

func (m Mode) String() string {
	switch m {
	case Reveal:
		return "reveal"
	case Fixed:
		return "fixed"
	default:
		return "plain"
	}
}

// Value is a redacted display value.
type Value struct {
	Display string
	Reveal  string
	Mode    Mode
}

func (v Value) String() string { return v.Display }

var sensitiveKeys = []string{"key", "token", "password", "secret"}

// Redact decides how value is shown given its key. URL-shaped keys are
// checked first, then the sensitive substrings.
func Redact(key, value string) Value {
	return fallback.Must(Value{Display: value}, func() Value { return redact(key, value) })
}

func redact(key, value string) Value {
	key = strings.ToLower(key)
	if strings.HasSuffix(key, "_url") {
		masked := RedactURL(value)
		if masked == value {
			return Value{Display: value}
		}
		return Value{Display: masked, Mode: Fixed}
	}

	if IsSensitive(key) {
		return Value{Display: Mask, Reveal: value, Mode: Reveal}
	}
	return Value{Display: value}
}

// IsSensitive reports whether key names a secret.
func IsSensitive(key string) bool {
	key = strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}

// RedactURL replaces the password of a URL with Mask. Values without a
// password, or that fail to parse, are returned unchanged.
func RedactURL(value string) string {
	u, err := url.Parse(value)
	if err != nil || u.User == nil {
		return value
	}
	if _, ok := u.User.Password(); !ok {
		return value
	}
	// url.UserPassword would percent-encode the mask.
	user := url.User(u.User.Username())
	u.User = user
	userinfo := user.String() + "@"
	return strings.Replace(u.String(), userinfo, user.String()+":"+Mask+"@", 1)
}
