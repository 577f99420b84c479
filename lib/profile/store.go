package profile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/bigkevmcd/go-configparser"
)

// Details holds the options of one profile section, keys lowercased.
type Details map[string]string

// Store reads profiles from an AWS CLI config file.
type Store struct {
	Path string
}

// NewStore returns a store for path, or for ~/.aws/config when path is empty.
func NewStore(path string) *Store {
	if path == "" {
		path = awsCfg.DefaultSharedConfigFilename()
	}
	return &Store{Path: path}
}

func sectionName(name string) string {
	return "profile " + name
}

// Load returns the details of the named profile, or nil when the file or the
// section does not exist. Options of the [DEFAULT] section are inherited.
func (s *Store) Load(name string) (Details, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}

	if err := checkStructure(data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.Path, err)
	}

	p, err := configparser.ParseReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.Path, err)
	}

	section := sectionName(name)
	if !p.HasSection(section) {
		return nil, nil
	}

	items, err := p.ItemsWithDefaults(section)
	if err != nil {
		return nil, fmt.Errorf("failed to read [%s] from %s: %w", section, s.Path, err)
	}

	details := make(Details, len(items))
	for k, v := range items {
		details[strings.ToLower(k)] = v
	}
	return details, nil
}

const defaultSection = "DEFAULT"

var sectionHeader = regexp.MustCompile(`^\[([^]]+)\]`)

// checkStructure rejects what configparser would otherwise skip or merge
// silently: text before the first section header, lines that are neither a
// header nor an option, and repeated sections or options.
func checkStructure(data []byte) error {
	var (
		section string
		inKey   bool
		seen    = map[string]map[string]bool{}
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		raw := scanner.Text()
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if line == "" {
			inKey = false
			continue
		}
		if inKey && (raw[0] == ' ' || raw[0] == '\t') {
			continue
		}
		inKey = false

		if m := sectionHeader.FindStringSubmatch(line); m != nil {
			section = m[1]
			if _, ok := seen[section]; ok && section != defaultSection {
				return fmt.Errorf("line %d: section [%s] already exists", lineNo, section)
			}
			if seen[section] == nil {
				seen[section] = map[string]bool{}
			}
			continue
		}

		if section == "" {
			return fmt.Errorf("line %d: missing section header: %q", lineNo, line)
		}

		i := strings.IndexAny(line, ":=")
		if i <= 0 {
			return fmt.Errorf("line %d: expected <key> = <value>, got %q", lineNo, line)
		}
		key := strings.ToLower(strings.TrimSpace(line[:i]))
		if seen[section][key] {
			return fmt.Errorf("line %d: option %q already exists in [%s]", lineNo, key, section)
		}
		seen[section][key] = true
		inKey = true
	}
	return scanner.Err()
}
