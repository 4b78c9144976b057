// match.go groups parsed classes and decides which groups collapse.
package shorthand

import (
	"sort"
	"strings"
)

// GroupKind distinguishes the two outcomes of matching.
type GroupKind int

const (
	GroupShorthand GroupKind = iota // members are replaced by a new shorthand class
	GroupRedundant                  // members are dropped; a present class already covers them
)

func (k GroupKind) String() string {
	if k == GroupRedundant {
		return "redundant"
	}
	return "shorthand"
}

// Group is a set of class indices consumed together.
type Group struct {
	Kind    GroupKind
	Rule    string // family name
	Members []int  // indices into the parsed classes, ascending
	// Shorthand is the synthesized class for GroupShorthand and the
	// covering class already present for GroupRedundant.
	Shorthand ClassInfo
}

// Lead returns the position where a synthesized shorthand is written.
func (g Group) Lead() int {
	return g.Members[0]
}

// Plan is the outcome of matching one class list.
type Plan struct {
	Groups    []Group // ordered by Lead
	Untouched []int   // indices no group consumed, ascending
}

// Empty reports whether the plan changes nothing.
func (p Plan) Empty() bool {
	return len(p.Groups) == 0
}

// bucketKey identifies classes that may combine: same variants, sign,
// importance and (for value-parameterized rules) value.
type bucketKey struct {
	prefix    string
	negative  bool
	important Importance
	value     string
}

type candidate struct {
	index  int
	member Member
}

type bucket struct {
	key     bucketKey
	members []candidate
}

// Match computes the groups for classes under catalog. Coverage by a
// shorthand that is already present is resolved first; the remaining
// classes are then combined per rule, full shorthands before partials.
// A class is consumed by at most one group.
func Match(classes []ClassInfo, catalog *Catalog) Plan {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	taken := make([]bool, len(classes))
	var groups []Group

	for ri, rule := range catalog.rules {
		for _, b := range buckets(classes, catalog, ri, taken) {
			if g, ok := redundant(rule, b, classes); ok {
				for _, i := range g.Members {
					taken[i] = true
				}
				groups = append(groups, g)
			}
		}
	}

	for ri, rule := range catalog.rules {
		for _, b := range buckets(classes, catalog, ri, taken) {
			for _, g := range combine(rule, b) {
				for _, i := range g.Members {
					taken[i] = true
				}
				groups = append(groups, g)
			}
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Lead() < groups[j].Lead()
	})

	plan := Plan{Groups: groups}
	for i := range classes {
		if !taken[i] {
			plan.Untouched = append(plan.Untouched, i)
		}
	}
	return plan
}

// buckets collects the untaken classes that instantiate rule ri, keyed by
// compatibility, in first-seen order.
func buckets(classes []ClassInfo, catalog *Catalog, ri int, taken []bool) []*bucket {
	literal := catalog.rules[ri].Literal
	index := make(map[bucketKey]*bucket)
	var out []*bucket

	for i, c := range classes {
		if taken[i] || c.opaque {
			continue
		}
		m, ok := catalog.lookup(ri, c)
		if !ok {
			continue
		}
		key := bucketKey{prefix: c.Prefix, negative: c.Negative, important: c.Important}
		if !literal {
			key.value = c.Value
		}
		b, ok := index[key]
		if !ok {
			b = &bucket{key: key}
			index[key] = b
			out = append(out, b)
		}
		b.members = append(b.members, candidate{index: i, member: m})
	}
	return out
}

// redundant finds members whose slots are a strict subset of another
// member's slots in the same bucket.
func redundant(rule Rule, b *bucket, classes []ClassInfo) (Group, bool) {
	g := Group{Kind: GroupRedundant, Rule: rule.Name}
	cover := -1
	for _, c := range b.members {
		for _, o := range b.members {
			if c.member.Mask&^o.member.Mask == 0 && c.member.Mask != o.member.Mask {
				g.Members = append(g.Members, c.index)
				if cover < 0 {
					cover = o.index
				}
				break
			}
		}
	}
	if len(g.Members) == 0 {
		return Group{}, false
	}
	g.Shorthand = classes[cover]
	return g, true
}

// combine builds new-shorthand groups within one bucket. Types that occur
// more than once in the bucket are ambiguous and left alone.
func combine(rule Rule, b *bucket) []Group {
	counts := make(map[string]int)
	for _, c := range b.members {
		counts[c.member.Type]++
	}
	var pool []candidate
	for _, c := range b.members {
		if counts[c.member.Type] == 1 {
			pool = append(pool, c)
		}
	}

	var groups []Group
	used := make(map[int]bool)

	targets := append([]Member{rule.Shorthand()}, rule.Partials()...)
	for _, target := range targets {
		var picked []int
		var mask uint8
		for _, c := range pool {
			if used[c.index] || c.member.Mask&^target.Mask != 0 {
				continue
			}
			picked = append(picked, c.index)
			mask |= c.member.Mask
		}
		if mask != target.Mask || len(picked) < 2 {
			continue
		}
		for _, i := range picked {
			used[i] = true
		}
		groups = append(groups, Group{
			Kind:      GroupShorthand,
			Rule:      rule.Name,
			Members:   picked,
			Shorthand: synthesize(rule, target, b.key),
		})
	}
	return groups
}

func synthesize(rule Rule, target Member, key bucketKey) ClassInfo {
	info := ClassInfo{
		Prefix:    key.prefix,
		Type:      target.Type,
		Value:     key.value,
		Negative:  key.negative,
		Important: key.important,
	}
	if rule.Literal {
		info.Value = target.Value
	}
	info.Original = info.String()
	return info
}

// originals joins the original text of the given classes with ", ".
func originals(classes []ClassInfo, indices []int) string {
	names := make([]string, 0, len(indices))
	for _, i := range indices {
		names = append(names, classes[i].Original)
	}
	return strings.Join(names, ", ")
}
