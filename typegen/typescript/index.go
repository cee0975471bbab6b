package typescript

import (
	"fmt"
	"sort"
	"strings"
)

// FileExports lists the symbols one generated file exports, for the barrel
type FileExports struct {
	OutputPath string // without extension
	Exports    []Export
}

// GenerateIndexFile renders a barrel export file (index.ts) re-exporting
// every generated file. Interfaces are re-exported type-only; enums and
// constants as values.
func GenerateIndexFile(files []FileExports) string {
	sorted := make([]FileExports, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].OutputPath < sorted[j].OutputPath
	})

	var sb strings.Builder
	for _, f := range sorted {
		var types, values []string
		for _, e := range f.Exports {
			if e.Value {
				values = append(values, e.Name)
			} else {
				types = append(types, e.Name)
			}
		}
		if len(types) == 0 && len(values) == 0 {
			continue
		}
		sort.Strings(types)
		sort.Strings(values)

		specifier := ResolvePath("index", f.OutputPath)
		if len(types) > 0 {
			sb.WriteString(fmt.Sprintf("export type { %s } from '%s';\n", strings.Join(types, ", "), specifier))
		}
		if len(values) > 0 {
			sb.WriteString(fmt.Sprintf("export { %s } from '%s';\n", strings.Join(values, ", "), specifier))
		}
	}
	return sb.String()
}
