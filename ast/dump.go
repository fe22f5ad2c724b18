package ast

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/segmentio/encoding/json"
	"gopkg.in/yaml.v3"
)

// DumpYAML writes n as a YAML document
func DumpYAML(w io.Writer, n Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ToTree(n)); err != nil {
		return err
	}
	return enc.Close()
}

// DumpJSON writes n as indented JSON
func DumpJSON(w io.Writer, n Node) error {
	data, err := json.MarshalIndent(ToTree(n), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// DumpTree writes an indented outline of n, one node per line
func DumpTree(w io.Writer, n Node) error {
	var sb strings.Builder
	writeOutline(&sb, "", ToTree(n), 0)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeOutline(sb *strings.Builder, field string, tree map[string]any, depth int) {
	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent)
	if field != "" {
		sb.WriteString(field)
		sb.WriteString(": ")
	}
	fmt.Fprintf(sb, "%v [%v]", tree["kind"], tree["span"])

	keys := make([]string, 0, len(tree))
	for k := range tree {
		if k != "kind" && k != "span" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var nested []string
	for _, k := range keys {
		switch tree[k].(type) {
		case map[string]any, []any:
			nested = append(nested, k)
		default:
			fmt.Fprintf(sb, " %s=%v", k, tree[k])
		}
	}
	sb.WriteByte('\n')
	for _, k := range nested {
		switch v := tree[k].(type) {
		case map[string]any:
			writeOutline(sb, k, v, depth+1)
		case []any:
			for i, item := range v {
				label := fmt.Sprintf("%s[%d]", k, i)
				if m, ok := item.(map[string]any); ok {
					writeOutline(sb, label, m, depth+1)
				} else {
					fmt.Fprintf(sb, "%s  %s: %v\n", indent, label, item)
				}
			}
		}
	}
}
