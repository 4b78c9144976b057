// emit.go rebuilds a class list from a match plan.
package shorthand

import (
	"strings"
)

// Transformation reports one explicit shorthand substitution.
type Transformation struct {
	Shorthand  string `json:"shorthand"`
	Classnames string `json:"classnames"` // replaced classes, joined by ", "
}

// Emit writes classes back out in order, substituting each shorthand group
// at its leading position and skipping every other consumed class.
// It returns one Transformation per GroupShorthand.
func Emit(classes []ClassInfo, plan Plan) (string, []Transformation) {
	lead := make(map[int]*Group, len(plan.Groups))
	skip := make([]bool, len(classes))
	transformations := []Transformation{}

	for gi := range plan.Groups {
		g := &plan.Groups[gi]
		for _, i := range g.Members {
			skip[i] = true
		}
		if g.Kind == GroupShorthand {
			lead[g.Lead()] = g
			transformations = append(transformations, Transformation{
				Shorthand:  g.Shorthand.String(),
				Classnames: originals(classes, g.Members),
			})
		}
	}

	out := make([]string, 0, len(classes))
	for i, c := range classes {
		if g, ok := lead[i]; ok {
			out = append(out, g.Shorthand.String())
			continue
		}
		if skip[i] {
			continue
		}
		out = append(out, c.Original)
	}
	return strings.Join(out, " "), transformations
}
