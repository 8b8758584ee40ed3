package export

import (
	"fmt"
	"sort"
	"strings"
)

// Default Graphviz attributes for account graphs. Dependencies render bottom
// to top with orthogonal edges, and incoming edges keep their authored
// left-to-right order.
var defaultGraphAttributes = map[string]string{
	"rankdir":  "BT",
	"splines":  "ortho",
	"ranksep":  ".75",
	"nodesep":  ".5",
	"ordering": "in",
	"newrank":  "true",
}

var defaultNodeAttributes = map[string]string{
	"shape": "box",
}

// DOT serializes a description to Graphviz DOT text, applying the theme.
// Hidden edges are rendered invisible so they still constrain layout without
// being drawn.
func DOT(desc *Description, theme *Theme) string {
	if theme == nil {
		theme = DefaultTheme()
	}

	var sb strings.Builder
	sb.WriteString("digraph account_access {\n")

	writeAttrLine(&sb, "graph", mergeStyles(defaultGraphAttributes, theme.Graph))
	writeAttrLine(&sb, "node", mergeStyles(defaultNodeAttributes, theme.Node))
	if len(theme.Edge) > 0 {
		writeAttrLine(&sb, "edge", mergeStyles(nil, theme.Edge))
	}
	sb.WriteString("\n")

	for _, node := range desc.Nodes {
		attrs := mergeStyles(nil, theme.styleFor(node))
		attrs["label"] = node.Display
		for key, value := range node.Attributes {
			// The authored description becomes a hover tooltip.
			if key == "description" {
				attrs["tooltip"] = value
				continue
			}
			attrs[key] = value
		}
		fmt.Fprintf(&sb, "\t%s %s\n", quote(node.Name), attrString(attrs))
	}
	sb.WriteString("\n")

	for _, edge := range desc.Edges {
		attrs := Style{}
		if edge.Recovery {
			for k, v := range theme.Recovery {
				attrs[k] = v
			}
		}
		if edge.Hidden {
			attrs["style"] = "invis"
		}
		if edge.Label != "" && !edge.Recovery && !edge.Hidden {
			attrs["label"] = edge.Label
		}

		// One drawn edge per (dependency, target) pair; conjunction
		// members of the same relation share the group for renderers
		// that support head grouping.
		for _, sink := range edge.To {
			for _, dep := range edge.From {
				if len(edge.From) > 1 {
					attrs["samehead"] = fmt.Sprintf("group%d", edge.UniqueGroupID)
				}
				fmt.Fprintf(&sb, "\t%s -> %s %s\n",
					quote(dep), quote(sink), attrString(attrs))
			}
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// mergeStyles overlays override onto a copy of base.
func mergeStyles(base map[string]string, override Style) Style {
	merged := Style{}
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

func writeAttrLine(sb *strings.Builder, target string, attrs Style) {
	if len(attrs) == 0 {
		return
	}
	fmt.Fprintf(sb, "\t%s %s\n", target, attrString(attrs))
}

// attrString renders an attribute map as a DOT attribute list with stable
// key order.
func attrString(attrs Style) string {
	if len(attrs) == 0 {
		return "[]"
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, quote(attrs[k])))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
