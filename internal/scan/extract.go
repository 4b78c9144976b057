package scan

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ClassList is one class attribute value located in a source file.
type ClassList struct {
	Attribute string
	Value     string
	Offset    int // byte offset of Value in the source
}

// extractor pulls class lists out of source text.
type extractor struct {
	attrs   []string
	attrRes map[string]*regexp.Regexp // lowercased name -> "name=" locator
	textRe  *regexp.Regexp
	md      goldmark.Markdown
}

func newExtractor(attrs []string) *extractor {
	e := &extractor{
		attrs:   attrs,
		attrRes: make(map[string]*regexp.Regexp, len(attrs)),
		md:      goldmark.New(),
	}

	quoted := make([]string, 0, len(attrs))
	for _, a := range attrs {
		q := regexp.QuoteMeta(a)
		quoted = append(quoted, q)
		e.attrRes[strings.ToLower(a)] = regexp.MustCompile(`(?i)(?:^|\s)` + q + `\s*=\s*["']?`)
	}
	e.textRe = regexp.MustCompile(`(?:^|\s)(` + strings.Join(quoted, "|") + `)\s*=\s*\{?\s*(?:"([^"]*)"|'([^']*)'|` + "`([^`]*)`" + `)`)
	return e
}

// extract dispatches on file extension.
func (e *extractor) extract(ext, src string) []ClassList {
	switch strings.ToLower(ext) {
	case ".html", ".htm", ".xhtml":
		return e.html(src, 0)
	case ".md", ".markdown":
		return e.markdown(src)
	default:
		return e.text(src)
	}
}

// html parses src as an HTML document and locates every configured
// attribute value in the raw text. Values that cannot be found verbatim
// (entity-encoded text, for example) are skipped since they cannot be
// rewritten in place.
func (e *extractor) html(src string, base int) []ClassList {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil
	}

	var out []ClassList
	cursor := 0
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		for _, node := range sel.Nodes {
			for _, attr := range node.Attr {
				re, ok := e.attrRes[strings.ToLower(attr.Key)]
				if !ok || strings.TrimSpace(attr.Val) == "" {
					continue
				}
				off := locate(src, cursor, re, attr.Val)
				if off < 0 {
					continue
				}
				cursor = off + len(attr.Val)
				out = append(out, ClassList{
					Attribute: e.canonicalAttr(attr.Key),
					Value:     attr.Val,
					Offset:    base + off,
				})
			}
		}
	})
	return out
}

// markdown finds raw HTML in a markdown document and extracts class lists
// from each fragment.
func (e *extractor) markdown(src string) []ClassList {
	source := []byte(src)
	doc := e.md.Parser().Parse(text.NewReader(source))

	var out []ClassList
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.HTMLBlock:
			lines := node.Lines()
			if lines.Len() == 0 {
				return ast.WalkContinue, nil
			}
			start, stop := lines.At(0).Start, lines.At(lines.Len()-1).Stop
			if node.HasClosure() && node.ClosureLine.Stop > stop {
				stop = node.ClosureLine.Stop
			}
			out = append(out, e.html(src[start:stop], start)...)
		case *ast.RawHTML:
			if node.Segments.Len() == 0 {
				return ast.WalkContinue, nil
			}
			start := node.Segments.At(0).Start
			stop := node.Segments.At(node.Segments.Len() - 1).Stop
			out = append(out, e.html(src[start:stop], start)...)
		}
		return ast.WalkContinue, nil
	})
	return out
}

// text scans template and component sources (templ, JSX, Vue, Svelte)
// with a pattern that accepts quoted, braced and backtick values.
func (e *extractor) text(src string) []ClassList {
	var out []ClassList
	for _, m := range e.textRe.FindAllStringSubmatchIndex(src, -1) {
		attr := src[m[2]:m[3]]
		for g := 4; g+1 < len(m); g += 2 {
			if m[g] < 0 {
				continue
			}
			value := src[m[g]:m[g+1]]
			if strings.TrimSpace(value) != "" {
				out = append(out, ClassList{Attribute: attr, Value: value, Offset: m[g]})
			}
			break
		}
	}
	return out
}

func (e *extractor) canonicalAttr(key string) string {
	for _, a := range e.attrs {
		if strings.EqualFold(a, key) {
			return a
		}
	}
	return key
}

// locate returns the offset of value in src where it directly follows an
// attribute assignment matched by re, searching from cursor.
func locate(src string, cursor int, re *regexp.Regexp, value string) int {
	for cursor <= len(src) {
		loc := re.FindStringIndex(src[cursor:])
		if loc == nil {
			return -1
		}
		at := cursor + loc[1]
		if strings.HasPrefix(src[at:], value) {
			return at
		}
		cursor += loc[1]
	}
	return -1
}

// isDynamic reports values built by a template language, which must not be
// rewritten.
func isDynamic(value string) bool {
	return strings.ContainsAny(value, "{}$") || strings.Contains(value, "<%")
}
