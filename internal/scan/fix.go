package scan

import (
	"fmt"
	"os"
	"sort"
)

// Fix applies findings to src. A finding is skipped when the text at its
// offset no longer matches its original class list.
func Fix(src string, findings []Finding) (string, int) {
	sorted := append([]Finding(nil), findings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset > sorted[j].Offset
	})

	applied := 0
	end := len(src) + 1
	for _, f := range sorted {
		stop := f.Offset + len(f.Original)
		if f.Offset < 0 || stop > len(src) || stop > end || src[f.Offset:stop] != f.Original {
			continue
		}
		src = src[:f.Offset] + f.Value + src[stop:]
		end = f.Offset
		applied++
	}
	return src, applied
}

// WriteFixes rewrites every file named in findings, preserving file mode.
// It returns the number of class lists rewritten.
func WriteFixes(findings []Finding) (int, error) {
	byFile := make(map[string][]Finding)
	var order []string
	for _, f := range findings {
		if _, ok := byFile[f.File]; !ok {
			order = append(order, f.File)
		}
		byFile[f.File] = append(byFile[f.File], f)
	}

	total := 0
	for _, file := range order {
		info, err := os.Stat(file)
		if err != nil {
			return total, fmt.Errorf("failed to stat %s: %w", file, err)
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return total, fmt.Errorf("failed to read %s: %w", file, err)
		}

		fixed, n := Fix(string(data), byFile[file])
		if n == 0 {
			continue
		}
		if err := os.WriteFile(file, []byte(fixed), info.Mode().Perm()); err != nil {
			return total, fmt.Errorf("failed to write %s: %w", file, err)
		}
		total += n
	}
	return total, nil
}
