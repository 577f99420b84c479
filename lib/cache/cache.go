package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/stensonb/awshelper/lib/types"
)

// ErrMiss is wrapped by every Read error that a refresh of the AWS CLI
// cache could fix.
var ErrMiss = errors.New("credential cache miss")

// Cache reads the JSON files the AWS CLI keeps under ~/.aws/cli/cache.
type Cache struct {
	Dir string
}

func DefaultDir() (string, error) {
	return homedir.Expand(filepath.Join("~", ".aws", "cli", "cache"))
}

// New returns a cache for dir, or for the AWS CLI's default directory when
// dir is empty.
func New(dir string) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve the AWS CLI cache directory: %w", err)
		}
		dir = d
	}
	return &Cache{Dir: dir}, nil
}

func (c *Cache) Path(key string) string {
	return filepath.Join(c.Dir, key+".json")
}

func (c *Cache) Read(key string) (*types.CredentialRecord, error) {
	path := c.Path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMiss, err)
	}

	var entry types.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("%w: can't parse %s: %w", ErrMiss, path, err)
	}

	if entry.Credentials == nil || entry.Credentials.AccessKeyId == "" {
		return nil, fmt.Errorf("%w: no credentials in %s", ErrMiss, path)
	}

	return entry.Credentials, nil
}
