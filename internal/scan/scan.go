// Package scan finds Tailwind class lists in source files and checks them
// for shorthand opportunities.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/open-cli-collective/tailwind-shorthand/internal/logger"
	"github.com/open-cli-collective/tailwind-shorthand/pkg/shorthand"
)

// Finding is a class list that can be shortened.
type Finding struct {
	File            string                     `json:"file"`
	Line            int                        `json:"line"`
	Attribute       string                     `json:"attribute"`
	Original        string                     `json:"original"`
	Value           string                     `json:"value"`
	Transformations []shorthand.Transformation `json:"transformations"`
	Offset          int                        `json:"-"`
}

// Options configures a Scanner.
type Options struct {
	Extensions  []string
	Attributes  []string
	Catalog     *shorthand.Catalog
	Merge       bool // resolve conflicting classes with tailwind-merge first
	Concurrency int  // files processed at once; 0 means GOMAXPROCS
}

// Scanner checks class lists in files. It is safe for concurrent use.
type Scanner struct {
	opts    Options
	exts    map[string]bool
	extract *extractor
	results *cache.Cache
	mergeMu sync.Mutex
	log     *zap.Logger
}

// New creates a Scanner.
func New(opts Options) *Scanner {
	if opts.Catalog == nil {
		opts.Catalog = shorthand.DefaultCatalog()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}
	exts := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		exts[strings.ToLower(ext)] = true
	}
	return &Scanner{
		opts:    opts,
		exts:    exts,
		extract: newExtractor(opts.Attributes),
		results: cache.New(10*time.Minute, 20*time.Minute),
		log:     logger.L().Named("scan"),
	}
}

// Apply runs the shorthand engine on one class list, memoizing results.
func (s *Scanner) Apply(classList string) shorthand.Result {
	if cached, ok := s.results.Get(classList); ok {
		return cached.(shorthand.Result)
	}

	input := classList
	if s.opts.Merge {
		s.mergeMu.Lock()
		input = twmerge.Merge(classList)
		s.mergeMu.Unlock()
	}

	result := shorthand.ApplyShorthands(input, shorthand.WithCatalog(s.opts.Catalog))

	normalized := strings.Join(strings.Fields(classList), " ")
	if result.Value != normalized && !result.Applied {
		// Only the merge pass changed the list.
		result.Applied = true
		result.Transformations = append(result.Transformations, shorthand.Transformation{
			Shorthand:  result.Value,
			Classnames: strings.Join(strings.Fields(classList), ", "),
		})
	}

	s.results.Set(classList, result, cache.DefaultExpiration)
	return result
}

// Files expands paths into the list of files to scan. Directories are
// walked recursively, skipping hidden directories and node_modules.
// Explicit file arguments are always included.
func (s *Scanner) Files(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != root && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor") {
					return filepath.SkipDir
				}
				return nil
			}
			if s.exts[strings.ToLower(filepath.Ext(path))] {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// Scan checks every file under paths and returns findings ordered by file
// and position.
func (s *Scanner) Scan(ctx context.Context, paths []string) ([]Finding, error) {
	files, err := s.Files(paths)
	if err != nil {
		return nil, err
	}
	s.log.Debug("scanning", zap.Int("files", len(files)))

	perFile := make([][]Finding, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			findings, err := s.ScanFile(file)
			if err != nil {
				return err
			}
			perFile[i] = findings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Finding
	for _, f := range perFile {
		all = append(all, f...)
	}
	return all, nil
}

// ScanFile reads and checks one file.
func (s *Scanner) ScanFile(path string) ([]Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return s.ScanSource(path, string(data)), nil
}

// ScanSource checks source text; name selects the extractor by extension
// and is recorded in each finding.
func (s *Scanner) ScanSource(name, src string) []Finding {
	lists := s.extract.extract(filepath.Ext(name), src)
	s.log.Debug("extracted class lists", zap.String("file", name), zap.Int("count", len(lists)))

	var findings []Finding
	for _, cl := range lists {
		if isDynamic(cl.Value) {
			s.log.Debug("skipping dynamic class list", zap.String("file", name), zap.String("value", cl.Value))
			continue
		}
		result := s.Apply(cl.Value)
		if !result.Applied {
			continue
		}
		findings = append(findings, Finding{
			File:            name,
			Line:            1 + strings.Count(src[:cl.Offset], "\n"),
			Attribute:       cl.Attribute,
			Original:        cl.Value,
			Value:           result.Value,
			Transformations: result.Transformations,
			Offset:          cl.Offset,
		})
	}
	return findings
}
