package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/stensonb/awshelper/lib/profile"
	"gotest.tools/v3/assert"
)

func devProfile() profile.Details {
	return profile.Details{
		SSO_START_URL:  "https://x",
		SSO_ROLE_NAME:  "Admin",
		SSO_ACCOUNT_ID: "123",
	}
}

func TestKeyMatchesAWSCLI(t *testing.T) {
	sum := sha1.Sum([]byte(`{"accountId":"123","roleName":"Admin","startUrl":"https://x"}`))

	key, err := Key(devProfile())
	assert.NilError(t, err)
	assert.Equal(t, key, hex.EncodeToString(sum[:]))
	assert.Equal(t, key, "f6c8211f11ab4ac5dcdb9a5d26fb7c45c3053a69")
}

func TestKeyKnownValues(t *testing.T) {
	tests := []struct {
		name    string
		details profile.Details
		want    string
	}{
		{
			name: "typical sso profile",
			details: profile.Details{
				SSO_START_URL:  "https://my-sso.awsapps.com/start",
				SSO_ROLE_NAME:  "ReadOnly",
				SSO_ACCOUNT_ID: "111122223333",
			},
			want: "df3ce1a8196bf470552e100d1ec9adb156b9246b",
		},
		{
			name: "non-ascii and html characters",
			details: profile.Details{
				SSO_START_URL:  "https://x",
				SSO_ROLE_NAME:  "Ädmin<&>",
				SSO_ACCOUNT_ID: "123",
			},
			want: "0f97f61a70e2bc4fada98e15300ac9ba2d1f4083",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := Key(tt.details)
			assert.NilError(t, err)
			assert.Equal(t, key, tt.want)
		})
	}
}

func TestKeyIgnoresOtherFields(t *testing.T) {
	want, err := Key(devProfile())
	assert.NilError(t, err)

	extra := devProfile()
	extra["region"] = "eu-west-1"
	extra["output"] = "json"
	extra["sso_session"] = "corp"

	got, err := Key(extra)
	assert.NilError(t, err)
	assert.Equal(t, got, want)
}

func TestKeyChangesWithEachField(t *testing.T) {
	base, err := Key(devProfile())
	assert.NilError(t, err)

	for _, field := range []string{SSO_START_URL, SSO_ROLE_NAME, SSO_ACCOUNT_ID} {
		d := devProfile()
		d[field] += "1"

		key, err := Key(d)
		assert.NilError(t, err)
		assert.Check(t, key != base, "changing %s kept key %s", field, key)
	}

	d := devProfile()
	d[SSO_ACCOUNT_ID] = "124"
	key, err := Key(d)
	assert.NilError(t, err)
	assert.Equal(t, key, "2f780ed6b99266e6532e95699b039ea6b3938bc7")
}

func TestKeyMissingField(t *testing.T) {
	for _, field := range []string{SSO_START_URL, SSO_ROLE_NAME, SSO_ACCOUNT_ID} {
		d := devProfile()
		delete(d, field)

		_, err := Key(d)
		assert.ErrorContains(t, err, field)
	}
}

func TestASCIIEscape(t *testing.T) {
	assert.Equal(t, string(asciiEscape([]byte("\"\u00e9\""))), `"\u00e9"`)
	assert.Equal(t, string(asciiEscape([]byte("\"\x7f\""))), `"\u007f"`)
	assert.Equal(t, string(asciiEscape([]byte("\"\U0001F600\""))), `"\ud83d\ude00"`)
	assert.Equal(t, string(asciiEscape([]byte(`{"a":"b"}`))), `{"a":"b"}`)
}
