package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type FSLoader struct{}

func NewLoader() *FSLoader { return &FSLoader{} }

// LoadPacks reads every *.yaml content pack under root. A missing root is
// not an error: the builtin catalog is always available without packs.
func (l *FSLoader) LoadPacks(ctx context.Context, root string) ([]Pack, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	packs := make([]Pack, 0)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()
		if entry.IsDir() || !isYAML(name) {
			continue
		}
		path := filepath.Join(root, name)
		pack, err := readPack(path)
		if err != nil {
			return nil, fmt.Errorf("load pack %s: %w", path, err)
		}
		pack.Path = path
		packs = append(packs, pack)
	}

	sort.Slice(packs, func(i, j int) bool { return packs[i].PackID < packs[j].PackID })
	return packs, nil
}

func readPack(path string) (Pack, error) {
	var pack Pack
	b, err := os.ReadFile(path)
	if err != nil {
		return pack, err
	}
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return pack, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := pack.Validate(); err != nil {
		return pack, fmt.Errorf("validate %s: %w", path, err)
	}
	return pack, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
