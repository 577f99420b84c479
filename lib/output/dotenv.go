package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stensonb/awshelper/lib/types"
)

// MergeDotenv overlays the credential variables onto the dotenv file at path
// and rewrites it as sorted KEY=VALUE lines. Values are kept byte for byte:
// no quoting, expansion or escape handling. Comments and blank lines in the
// existing file are dropped; a line without '=' is an error and the file is
// left untouched.
//
// The file is read and rewritten without locking, so concurrent runs against
// the same file can lose updates.
func MergeDotenv(path string, creds aws.Credentials) error {
	env, err := readDotenv(path)
	if err != nil {
		return err
	}

	for _, kv := range types.CredentialEnv(creds) {
		k, v, _ := strings.Cut(kv, "=")
		env[k] = v
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, env[k])
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func readDotenv(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	env, err := parseDotenv(string(data))
	if err != nil {
		return nil, fmt.Errorf("can't merge credentials into %s: %w", path, err)
	}
	return env, nil
}

// parseDotenv splits each line on its first '='. Later keys win.
func parseDotenv(data string) (map[string]string, error) {
	env := map[string]string{}
	for i, line := range strings.Split(data, "\n") {
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: %q is not KEY=VALUE", i+1, line)
		}
		env[k] = v
	}
	return env, nil
}
