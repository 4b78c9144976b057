// catalog.go defines the shorthand rule table.
package shorthand

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"
)

// Member is one utility type participating in a rule. Mask is the set of
// rule slots the type covers: a member covering every slot is the rule's
// shorthand, a member covering several slots is an axis partial.
type Member struct {
	Type  string
	Value string // literal rules only; value-parameterized rules leave it empty
	Mask  uint8
}

// Rule is one shorthand family.
type Rule struct {
	Name    string   // family name, e.g. "margin"
	Slots   []string // slot labels, in mask bit order
	Literal bool     // members are matched by type and value, not by shared value
	Values  []string // when set, only these values group
	Members []Member // full shorthand first, then partials, then longhands
}

// accepts reports whether value may take part in the rule.
func (r Rule) accepts(value string) bool {
	if len(r.Values) == 0 {
		return true
	}
	for _, v := range r.Values {
		if v == value {
			return true
		}
	}
	return false
}

// Full returns the mask covering every slot.
func (r Rule) Full() uint8 {
	return uint8(1<<len(r.Slots) - 1)
}

// Shorthand returns the member covering every slot.
func (r Rule) Shorthand() Member {
	for _, m := range r.Members {
		if m.Mask == r.Full() {
			return m
		}
	}
	return Member{}
}

// Partials returns the multi-slot members that are not the full shorthand,
// in declared order.
func (r Rule) Partials() []Member {
	var out []Member
	for _, m := range r.Members {
		if m.Mask != r.Full() && bits.OnesCount8(m.Mask) > 1 {
			out = append(out, m)
		}
	}
	return out
}

// Longhands returns the single-slot members.
func (r Rule) Longhands() []Member {
	var out []Member
	for _, m := range r.Members {
		if bits.OnesCount8(m.Mask) == 1 && m.Mask != r.Full() {
			out = append(out, m)
		}
	}
	return out
}

// Label renders the member as class text without variants, e.g. "mt" or
// "overflow-hidden".
func (m Member) Label() string {
	if m.Value == "" {
		return m.Type
	}
	return m.Type + "-" + m.Value
}

// Box sides: top, right, bottom, left.
const (
	sideT uint8 = 1 << iota
	sideR
	sideB
	sideL
)

// Corners: top-left, top-right, bottom-right, bottom-left.
const (
	cornerTL uint8 = 1 << iota
	cornerTR
	cornerBR
	cornerBL
)

func boxRule(name, full, prefix string) Rule {
	return Rule{
		Name:  name,
		Slots: []string{"t", "r", "b", "l"},
		Members: []Member{
			{Type: full, Mask: sideT | sideR | sideB | sideL},
			{Type: prefix + "x", Mask: sideL | sideR},
			{Type: prefix + "y", Mask: sideT | sideB},
			{Type: prefix + "t", Mask: sideT},
			{Type: prefix + "r", Mask: sideR},
			{Type: prefix + "b", Mask: sideB},
			{Type: prefix + "l", Mask: sideL},
		},
	}
}

func pairRule(name, full, a, b string) Rule {
	return Rule{
		Name:  name,
		Slots: []string{a, b},
		Members: []Member{
			{Type: full, Mask: 3},
			{Type: a, Mask: 1},
			{Type: b, Mask: 2},
		},
	}
}

// placeContent pairs align-content with justify-content. The content-*
// longhand also spells the content property (content-none, content-['x']),
// so only the alignment keywords place-content accepts are grouped.
func placeContent() Rule {
	r := pairRule("place-content", "place-content", "content", "justify")
	r.Values = []string{"center", "start", "end", "between", "around", "evenly", "baseline", "stretch"}
	return r
}

// Rules is the built-in rule table. Adding a utility family means adding
// one entry here.
var Rules = []Rule{
	boxRule("margin", "m", "m"),
	boxRule("padding", "p", "p"),
	boxRule("scroll-margin", "scroll-m", "scroll-m"),
	boxRule("scroll-padding", "scroll-p", "scroll-p"),
	boxRule("border-width", "border", "border-"),
	{
		Name:  "inset",
		Slots: []string{"t", "r", "b", "l"},
		Members: []Member{
			{Type: "inset", Mask: sideT | sideR | sideB | sideL},
			{Type: "inset-x", Mask: sideL | sideR},
			{Type: "inset-y", Mask: sideT | sideB},
			{Type: "top", Mask: sideT},
			{Type: "right", Mask: sideR},
			{Type: "bottom", Mask: sideB},
			{Type: "left", Mask: sideL},
		},
	},
	{
		Name:  "border-radius",
		Slots: []string{"tl", "tr", "br", "bl"},
		Members: []Member{
			{Type: "rounded", Mask: cornerTL | cornerTR | cornerBR | cornerBL},
			{Type: "rounded-t", Mask: cornerTL | cornerTR},
			{Type: "rounded-r", Mask: cornerTR | cornerBR},
			{Type: "rounded-b", Mask: cornerBR | cornerBL},
			{Type: "rounded-l", Mask: cornerTL | cornerBL},
			{Type: "rounded-tl", Mask: cornerTL},
			{Type: "rounded-tr", Mask: cornerTR},
			{Type: "rounded-br", Mask: cornerBR},
			{Type: "rounded-bl", Mask: cornerBL},
		},
	},
	pairRule("size", "size", "w", "h"),
	pairRule("gap", "gap", "gap-x", "gap-y"),
	pairRule("border-spacing", "border-spacing", "border-spacing-x", "border-spacing-y"),
	pairRule("scale", "scale", "scale-x", "scale-y"),
	pairRule("overflow", "overflow", "overflow-x", "overflow-y"),
	pairRule("overscroll", "overscroll", "overscroll-x", "overscroll-y"),
	placeContent(),
	pairRule("place-items", "place-items", "items", "justify-items"),
	pairRule("place-self", "place-self", "self", "justify-self"),
	{
		Name:    "truncate",
		Slots:   []string{"overflow", "text-overflow", "white-space"},
		Literal: true,
		Members: []Member{
			{Type: "truncate", Mask: 7},
			{Type: "overflow", Value: "hidden", Mask: 1},
			{Type: "text", Value: "ellipsis", Mask: 2},
			{Type: "whitespace", Value: "nowrap", Mask: 4},
		},
	},
}

// extraCompoundTypes are dash-containing utility keys that belong to no
// rule but must not be split at their first dash.
var extraCompoundTypes = []string{
	"grid-cols", "grid-rows", "col-span", "row-span", "auto-cols", "auto-rows",
	"line-clamp", "space-x", "space-y", "divide-x", "divide-y",
	"translate-x", "translate-y", "skew-x", "skew-y", "min-w", "min-h",
	"max-w", "max-h", "inset-s", "inset-e", "rounded-s", "rounded-e",
}

// Vocabulary renames canonical utility keys, e.g. {"w": "width"} for a
// design system that spells width utilities "width-4".
type Vocabulary map[string]string

// Validate rejects names that cannot appear as a utility key and renames
// that would make two keys collide, either with each other or with a
// built-in key that keeps its name.
func (v Vocabulary) Validate() error {
	builtin := make(map[string]bool)
	for _, r := range Rules {
		for _, m := range r.Members {
			builtin[m.Type] = true
		}
	}

	seen := make(map[string]string, len(v))
	for from, to := range v {
		if from == "" || to == "" {
			return fmt.Errorf("vocabulary entry %q -> %q: names must not be empty", from, to)
		}
		if strings.ContainsAny(to, " \t\n:!") || strings.HasPrefix(to, "-") {
			return fmt.Errorf("vocabulary entry %q -> %q: invalid utility name", from, to)
		}
		if _, renamed := v[to]; builtin[to] && !renamed {
			return fmt.Errorf("vocabulary entry %q -> %q: %q is already a utility name", from, to, to)
		}
		if prev, ok := seen[to]; ok {
			return fmt.Errorf("vocabulary entries %q and %q both map to %q", prev, from, to)
		}
		seen[to] = from
	}
	return nil
}

func (v Vocabulary) rename(typ string) string {
	if to, ok := v[typ]; ok {
		return to
	}
	return typ
}

type memberRef struct {
	rule   int
	member int
}

// Catalog is an immutable, lookup-ready view of a rule table. It is safe
// for concurrent use.
type Catalog struct {
	rules    []Rule
	byType   map[string][]memberRef
	compound []string // dash-containing keys, longest first
}

var defaultCatalog = NewCatalog(nil)

// DefaultCatalog returns the catalog built from Rules with no renames.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// NewCatalog builds a catalog from Rules with vocab applied to every
// member type. A nil vocabulary keeps the canonical names.
func NewCatalog(vocab Vocabulary) *Catalog {
	c := &Catalog{byType: make(map[string][]memberRef)}
	compound := make(map[string]bool)

	for ri, rule := range Rules {
		r := Rule{
			Name:    rule.Name,
			Slots:   rule.Slots,
			Literal: rule.Literal,
			Values:  rule.Values,
			Members: make([]Member, len(rule.Members)),
		}
		for mi, m := range rule.Members {
			m.Type = vocab.rename(m.Type)
			r.Members[mi] = m
			c.byType[m.Type] = append(c.byType[m.Type], memberRef{rule: ri, member: mi})
			if strings.Contains(m.Type, "-") {
				compound[m.Type] = true
			}
		}
		c.rules = append(c.rules, r)
	}
	for _, t := range extraCompoundTypes {
		compound[vocab.rename(t)] = true
	}

	for t := range compound {
		c.compound = append(c.compound, t)
	}
	sort.Slice(c.compound, func(i, j int) bool {
		if len(c.compound[i]) != len(c.compound[j]) {
			return len(c.compound[i]) > len(c.compound[j])
		}
		return c.compound[i] < c.compound[j]
	})

	return c
}

// Rules returns the catalog's rules. The returned slice must not be modified.
func (c *Catalog) Rules() []Rule {
	return c.rules
}

// lookup returns the member of rule ri that info instantiates.
func (c *Catalog) lookup(ri int, info ClassInfo) (Member, bool) {
	for _, ref := range c.byType[info.Type] {
		if ref.rule != ri {
			continue
		}
		m := c.rules[ri].Members[ref.member]
		if c.rules[ri].Literal && m.Value != info.Value {
			continue
		}
		if !c.rules[ri].accepts(info.Value) {
			continue
		}
		return m, true
	}
	return Member{}, false
}
