package cache

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/stensonb/awshelper/lib/profile"
)

const (
	SSO_START_URL  = "sso_start_url"
	SSO_ROLE_NAME  = "sso_role_name"
	SSO_ACCOUNT_ID = "sso_account_id"
)

// keyArgs mirrors the object the AWS CLI hashes. Fields are in sorted order.
type keyArgs struct {
	AccountID string `json:"accountId"`
	RoleName  string `json:"roleName"`
	StartURL  string `json:"startUrl"`
}

// Key derives the cache file name the AWS CLI uses for an SSO profile: the
// SHA-1 of the compact, key-sorted JSON of start URL, role name and account.
func Key(details profile.Details) (string, error) {
	var args keyArgs
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{SSO_START_URL, &args.StartURL},
		{SSO_ROLE_NAME, &args.RoleName},
		{SSO_ACCOUNT_ID, &args.AccountID},
	} {
		v, ok := details[f.name]
		if !ok {
			return "", fmt.Errorf("profile is missing %s, it is not an SSO profile", f.name)
		}
		*f.dst = v
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(args); err != nil {
		return "", fmt.Errorf("failed to encode cache key arguments: %w", err)
	}

	sum := sha1.Sum(asciiEscape(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))))
	return hex.EncodeToString(sum[:]), nil
}

// asciiEscape rewrites every rune outside printable ASCII as a \uXXXX escape
// (surrogate pairs above the BMP), which is how the AWS CLI's JSON encoder
// writes them. The input is already valid JSON, so such runes can only
// appear inside strings.
func asciiEscape(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		switch {
		case r < 0x7f:
			out = append(out, byte(r))
		case r > 0xffff:
			r1, r2 := utf16.EncodeRune(r)
			out = fmt.Appendf(out, `\u%04x\u%04x`, r1, r2)
		default:
			out = fmt.Appendf(out, `\u%04x`, r)
		}
	}
	return out
}
