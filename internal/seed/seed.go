// Package seed loads the startup activity roster.
//
// The roster is a statically defined table rather than literals scattered in
// code: an embedded YAML file ships the default school catalog, and SEED_PATH
// can point at a replacement file for other deployments.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"example.com/signup/internal/domain"
)

//go:embed activities.yaml
var defaultTable []byte

// Entry is one row of the seed table.
type Entry struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Schedule        string   `yaml:"schedule"`
	MaxParticipants int      `yaml:"max_participants"`
	Participants    []string `yaml:"participants"`
}

// Load reads the seed table from path, or the embedded default when path is
// empty, and returns the initial directory snapshot.
func Load(path string) (map[string]domain.Activity, error) {
	data := defaultTable
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		data = fileData
	}
	return Parse(data)
}

// Parse decodes and validates a YAML seed table.
func Parse(data []byte) (map[string]domain.Activity, error) {
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode seed table: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("seed table is empty")
	}

	directory := make(map[string]domain.Activity, len(entries))
	for _, entry := range entries {
		if entry.Name == "" {
			return nil, fmt.Errorf("seed entry with empty name")
		}
		if _, exists := directory[entry.Name]; exists {
			return nil, fmt.Errorf("duplicate activity %q in seed table", entry.Name)
		}
		if entry.MaxParticipants <= 0 {
			return nil, fmt.Errorf("activity %q: max_participants must be > 0", entry.Name)
		}

		seen := make(map[string]struct{}, len(entry.Participants))
		for _, email := range entry.Participants {
			if email == "" {
				return nil, fmt.Errorf("activity %q: empty participant email", entry.Name)
			}
			if _, dup := seen[email]; dup {
				return nil, fmt.Errorf("activity %q: duplicate participant %q", entry.Name, email)
			}
			seen[email] = struct{}{}
		}

		directory[entry.Name] = domain.Activity{
			Description:     entry.Description,
			Schedule:        entry.Schedule,
			MaxParticipants: entry.MaxParticipants,
			Participants:    append([]string(nil), entry.Participants...),
		}
	}

	return directory, nil
}
