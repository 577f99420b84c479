package cache

import (
	"fmt"
	"time"
)

// The AWS CLI writes SSO role credentials with a literal UTC suffix; other
// providers use the Z form.
var expirationLayouts = []string{
	"2006-01-02T15:04:05UTC",
	"2006-01-02T15:04:05Z",
}

func ParseExpiration(s string) (time.Time, error) {
	for _, layout := range expirationLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised credential expiration %q, expected YYYY-MM-DDTHH:MM:SSUTC or YYYY-MM-DDTHH:MM:SSZ", s)
}

// Expired reports whether now is strictly after the expiration s.
func Expired(s string, now time.Time) (bool, error) {
	t, err := ParseExpiration(s)
	if err != nil {
		return false, err
	}
	return now.UTC().After(t), nil
}
