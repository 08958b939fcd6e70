package seed

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var envReference = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Loader reads a YAML seed file
type Loader struct {
	filePath string
}

// NewLoader creates a new seed loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the seed file
func (l *Loader) Load() (*File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	data = expandEnv(data)

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}
	return &file, nil
}

// expandEnv replaces ${VAR} with its value (empty when unset). Bare $VAR
// is left alone so URLs keep their dollar signs.
func expandEnv(data []byte) []byte {
	return envReference.ReplaceAllFunc(data, func(m []byte) []byte {
		name := envReference.FindSubmatch(m)[1]
		return []byte(os.Getenv(string(name)))
	})
}
