// Package shorthand collapses Tailwind-style longhand utility classes into
// their shorthand equivalents.
//
// A class list is parsed token by token into ClassInfo records, matched
// against a Catalog of rule families, and re-emitted with each complete
// group replaced by one shorthand class:
//
//	r := shorthand.ApplyShorthands("flex mt-4 mr-4 mb-4 ml-4")
//	// r.Value == "flex m-4"
//
// Classes made redundant by a shorthand already in the list are dropped.
// Every call is pure; the package holds no mutable state and may be used
// from any number of goroutines.
package shorthand

import (
	"strings"
)

// Result is the outcome of ApplyShorthands.
type Result struct {
	Applied         bool             `json:"applied"`
	Value           string           `json:"value"`
	Transformations []Transformation `json:"transformations"`
}

// Option configures ApplyShorthands.
type Option func(*options)

type options struct {
	catalog *Catalog
}

// WithCatalog uses a prebuilt catalog. Prefer this over WithVocabulary when
// the same vocabulary is applied to many inputs.
func WithCatalog(c *Catalog) Option {
	return func(o *options) {
		if c != nil {
			o.catalog = c
		}
	}
}

// WithVocabulary renames utility keys before matching, e.g. {"w": "width"}.
// The vocabulary is used as given; callers should reject bad input with
// Vocabulary.Validate first, since colliding names make a rule's members
// indistinguishable.
func WithVocabulary(v Vocabulary) Option {
	return func(o *options) {
		if len(v) > 0 {
			o.catalog = NewCatalog(v)
		}
	}
}

// ApplyShorthands rewrites input so that every collapsible group of classes
// is replaced by its shorthand. Whitespace is normalized to single spaces.
//
// Rewriting repeats until nothing changes, so the returned Value is always
// a fixed point: ApplyShorthands(r.Value).Applied is false.
//
// When classes were only dropped as redundant, Transformations holds one
// consolidated record naming every input class.
func ApplyShorthands(input string, opts ...Option) Result {
	o := options{catalog: DefaultCatalog()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	normalized := strings.Join(strings.Fields(input), " ")
	if normalized == "" {
		return Result{Value: "", Transformations: []Transformation{}}
	}

	value := normalized
	transformations := []Transformation{}
	for {
		classes := o.catalog.ParseClasses(strings.Fields(value))
		plan := Match(classes, o.catalog)
		if plan.Empty() {
			break
		}
		next, ts := Emit(classes, plan)
		transformations = append(transformations, ts...)
		if next == value {
			break
		}
		value = next
	}

	if len(transformations) == 0 && value != normalized {
		transformations = append(transformations, Transformation{
			Shorthand:  value,
			Classnames: strings.Join(strings.Fields(normalized), ", "),
		})
	}

	return Result{
		Applied:         value != normalized || len(transformations) > 0,
		Value:           value,
		Transformations: transformations,
	}
}
