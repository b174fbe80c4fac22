package group

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/wordpick/internal/utils"
	"github.com/charmbracelet/log"
)

var (
	ErrEmptyKey     = errors.New("group key is empty")
	ErrDuplicateKey = errors.New("duplicate group key")
	ErrEmptyTitle   = errors.New("item title is empty")
)

// groupFile mirrors the on-disk layout: an array of [[group]] tables,
// each with an array of [[group.item]] tables.
type groupFile struct {
	Groups []*Group `toml:"group"`
}

// LoadFile reads and validates a TOML group file. Groups are returned in file order.
func LoadFile(path string) ([]*Group, error) {
	var f groupFile
	if err := utils.LoadTOMLFile(path, &f); err != nil {
		return nil, fmt.Errorf("failed to load group file %s: %w", path, err)
	}
	if err := Validate(f.Groups); err != nil {
		return nil, fmt.Errorf("invalid group file %s: %w", path, err)
	}
	log.Debugf("Loaded %d groups from %s", len(f.Groups), path)
	return f.Groups, nil
}

// Parse decodes groups from TOML text.
func Parse(data string) ([]*Group, error) {
	var f groupFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse groups: %w", err)
	}
	if err := Validate(f.Groups); err != nil {
		return nil, err
	}
	return f.Groups, nil
}

// Validate checks that keys are present and unique and that every item has a title.
func Validate(groups []*Group) error {
	seen := make(map[string]bool, len(groups))
	for i, g := range groups {
		if g.Key == "" {
			return fmt.Errorf("group #%d: %w", i+1, ErrEmptyKey)
		}
		if seen[g.Key] {
			return fmt.Errorf("%q: %w", g.Key, ErrDuplicateKey)
		}
		seen[g.Key] = true
		for j, item := range g.Value {
			if item.Title == "" {
				return fmt.Errorf("group %q item #%d: %w", g.Key, j+1, ErrEmptyTitle)
			}
		}
	}
	return nil
}

// Find returns the group with the given key, or nil.
func Find(groups []*Group, key string) *Group {
	for _, g := range groups {
		if g.Key == key {
			return g
		}
	}
	return nil
}
