// Package metadata checks that a parsed YAML document carries a complete
// top-level metadata section.
package metadata

import (
	"gopkg.in/yaml.v3"
)

const sectionKey = "metadata"

// Result describes what the check found. At most one of SectionMissing,
// NotMapping, MissingKeys and EmptyKey is set.
type Result struct {
	SectionMissing bool
	NotMapping     bool
	MissingKeys    []string
	PresentKeys    []string
	EmptyKey       string
}

// OK reports whether the metadata section is complete.
func (r Result) OK() bool {
	return !r.SectionMissing && !r.NotMapping && len(r.MissingKeys) == 0 && r.EmptyKey == ""
}

// Check inspects doc for a metadata section containing every mandatory key
// with a non-empty value. A nil doc (empty file) has no metadata section.
// Missing keys are reported in mandatory order; present keys in document
// order. Only the first empty key is reported.
func Check(doc *yaml.Node, mandatory []string) Result {
	root := resolve(doc)
	if root != nil && root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			root = nil
		} else {
			root = resolve(root.Content[0])
		}
	}
	if root == nil || root.Kind != yaml.MappingNode {
		return Result{SectionMissing: true}
	}

	section, ok := lookup(root, sectionKey)
	if !ok {
		return Result{SectionMissing: true}
	}
	section = resolve(section)
	if section == nil || section.Kind != yaml.MappingNode {
		return Result{NotMapping: true}
	}

	present := keys(section)
	presentSet := make(map[string]bool, len(present))
	for _, k := range present {
		presentSet[k] = true
	}

	var missing []string
	for _, k := range mandatory {
		if !presentSet[k] {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return Result{MissingKeys: missing, PresentKeys: present}
	}

	for _, k := range mandatory {
		v, _ := lookup(section, k)
		if isEmpty(v) {
			return Result{EmptyKey: k, PresentKeys: present}
		}
	}

	return Result{PresentKeys: present}
}

func lookup(mapping *yaml.Node, key string) (*yaml.Node, bool) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1], true
		}
	}
	return nil, false
}

func keys(mapping *yaml.Node) []string {
	out := make([]string, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		out = append(out, mapping.Content[i].Value)
	}
	return out
}

// isEmpty treats null, empty strings, and empty collections as empty.
// Numbers and booleans always have content.
func isEmpty(n *yaml.Node) bool {
	n = resolve(n)
	if n == nil {
		return true
	}
	switch n.Kind {
	case yaml.SequenceNode, yaml.MappingNode:
		return len(n.Content) == 0
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return true
		case "!!str", "!!binary":
			return n.Value == ""
		default:
			return false
		}
	}
	return false
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}
