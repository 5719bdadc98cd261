package model

import (
	"encoding/json"
	"sort"

	"gopkg.in/yaml.v3"
)

// SortSet returns a sorted copy of names, used by builders whenever a field
// is semantically a set (CFGBlock.Defines/Uses/Calls, DFGInfo.Variables, ...)
// so that §6.4's "sets serialise as sorted arrays" rule holds without a
// bespoke MarshalJSON per type. Duplicates are removed.
func SortSet(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ToJSON renders v as the stable JSON representation required by §6.4.
// encoding/json already sorts map[string]T keys alphabetically, which
// covers the "maps serialise with sorted keys" half of the rule; the
// "sets serialise as sorted arrays" half is the caller's responsibility via
// SortSet at construction time.
func ToJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// ToYAML renders v as an alternate YAML projection alongside ToJSON.
func ToYAML(v interface{}) ([]byte, error) {
	return yaml.Marshal(v)
}
