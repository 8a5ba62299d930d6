// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// keywordFile is the mapping form of a keywords file.
type keywordFile struct {
	Keywords []string `yaml:"keywords"`
}

// LoadKeywords reads keyword terms from a YAML file. The file may be a plain
// sequence of terms or a mapping with a "keywords" sequence.
func LoadKeywords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keywords file %s: %w", path, err)
	}

	var list []string
	if err := yaml.Unmarshal(data, &list); err == nil {
		return MergeKeywords(list), nil
	}

	var kf keywordFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("parsing keywords file %s: %w", path, err)
	}
	return MergeKeywords(kf.Keywords), nil
}

// MergeKeywords concatenates term lists, dropping empty terms and
// duplicates while keeping first-seen order. An empty term would match
// every artifact, so it is never kept.
func MergeKeywords(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, term := range list {
			if term == "" || seen[term] {
				continue
			}
			seen[term] = true
			out = append(out, term)
		}
	}
	return out
}
