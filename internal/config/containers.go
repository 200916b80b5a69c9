// pattern: Imperative Shell

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadContainersFrom reads extra container declarations, one per *.yaml
// file in dir. A file without an id takes its name from the file. A
// missing directory yields nothing.
func LoadContainersFrom(dir string) ([]ContainerConfig, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	out := make([]ContainerConfig, 0, len(names))
	for _, name := range names {
		ct, err := loadContainer(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if ct.ID == "" {
			ct.ID = strings.TrimSuffix(name, ".yaml")
		}
		out = append(out, ct)
	}
	return out, nil
}

func loadContainer(path string) (ContainerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ContainerConfig{}, err
	}
	var ct ContainerConfig
	if err := yaml.Unmarshal(data, &ct); err != nil {
		return ContainerConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return ct, nil
}

// AddContainers appends declarations whose ids are not already present.
// It returns the ids that were skipped.
func (c *Config) AddContainers(cts []ContainerConfig) []string {
	var skipped []string
	for _, ct := range cts {
		if _, ok := c.Container(ct.ID); ok {
			skipped = append(skipped, ct.ID)
			continue
		}
		c.Containers = append(c.Containers, ct)
	}
	return skipped
}

// ContainersDir is where LoadContainersFrom looks by default.
func ContainersDir() string {
	return filepath.Join(ResolveConfigDir(), "containers")
}
