// Package validator performs semantic checks over a parsed Program: name
// uniqueness, fixed-placement collisions, and referential integrity
// between rule conditions and declared entities. Unlike the parser, a
// Validator does not stop at the first problem — it accumulates every
// finding and reports them together.
package validator

import (
	"fmt"

	"github.com/dungeonc/dungeonc/internal/compiler/ast"
	dsperrors "github.com/dungeonc/dungeonc/internal/compiler/errors"
)

// Validate runs every semantic check against prog and returns the
// accumulated diagnostics, in the order the checks produced them. A
// missing init section short-circuits every other check, since nothing
// else can be validated without it.
func Validate(prog *ast.Program) []*dsperrors.CompilerError {
	if prog.Init == nil {
		return []*dsperrors.CompilerError{dsperrors.Semantic("Missing required 'init:' section")}
	}

	var errs []*dsperrors.CompilerError
	errs = append(errs, validateUniqueness(prog.Init)...)
	errs = append(errs, validateCollisions(prog.Init)...)
	errs = append(errs, validateSemantics(prog)...)
	return errs
}

func validateUniqueness(init *ast.InitSection) []*dsperrors.CompilerError {
	var errs []*dsperrors.CompilerError
	seen := make(map[string]bool)

	check := func(name string) {
		if seen[name] {
			errs = append(errs, dsperrors.Semantic("Duplicate unique_name: %s", name))
		}
		seen[name] = true
	}

	for _, m := range init.Mythics {
		check(m.UniqueName)
	}
	for _, it := range init.Items {
		check(it.UniqueName)
	}
	for _, mo := range init.Monsters {
		check(mo.UniqueName)
	}
	for _, n := range init.NPCs {
		check(n.UniqueName)
	}
	if init.User != nil {
		check(init.User.UniqueName)
	}

	return errs
}

func validateCollisions(init *ast.InitSection) []*dsperrors.CompilerError {
	type placed struct {
		label    string
		pickable bool
	}
	positions := make(map[ast.Coordinate][]placed)

	add := func(pl *ast.Placement, label string, pickable bool) {
		if pl == nil || pl.Kind != ast.PlacementCoordinate {
			return
		}
		positions[pl.Coordinate] = append(positions[pl.Coordinate], placed{label: label, pickable: pickable})
	}

	for _, m := range init.Mythics {
		add(m.Placement, fmt.Sprintf("mythic:%s", m.UniqueName), true)
	}
	for _, it := range init.Items {
		add(it.Placement, fmt.Sprintf("item:%s", it.UniqueName), true)
	}
	for _, mo := range init.Monsters {
		add(mo.Placement, fmt.Sprintf("monster:%s", mo.UniqueName), false)
	}
	for _, n := range init.NPCs {
		add(n.Placement, fmt.Sprintf("npc:%s", n.UniqueName), false)
	}

	var errs []*dsperrors.CompilerError
	for pos, entities := range positions {
		if len(entities) <= 1 {
			continue
		}
		var nonPickup, labels []string
		for _, e := range entities {
			labels = append(labels, e.label)
			if !e.pickable {
				nonPickup = append(nonPickup, e.label)
			}
		}
		if len(nonPickup) > 1 {
			errs = append(errs, dsperrors.Semantic("Collision at (%d, %d): %s", pos.X, pos.Y, joinComma(labels)))
		}
	}
	return errs
}

func joinComma(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

func validateSemantics(prog *ast.Program) []*dsperrors.CompilerError {
	var errs []*dsperrors.CompilerError
	init := prog.Init

	if init.User != nil && init.User.Position == nil {
		errs = append(errs, dsperrors.Semantic("User must have an initial position"))
	}

	for _, n := range init.NPCs {
		if n.NPCType == ast.NPCStatic && n.Placement == nil {
			errs = append(errs, dsperrors.Semantic("npc-static '%s' must have a placement specified", n.UniqueName))
		}
	}

	if prog.Rules != nil {
		known := knownEntities(init)
		for _, rule := range prog.Rules.Rules {
			for _, cond := range rule.Conditions {
				if cond.Entity == "user" || known[cond.Entity] {
					continue
				}
				errs = append(errs, dsperrors.Semantic("Unknown entity referenced in rule: %s", cond.Entity))
			}
		}
	}

	return errs
}

func knownEntities(init *ast.InitSection) map[string]bool {
	known := make(map[string]bool)
	for _, m := range init.Mythics {
		known[m.UniqueName] = true
	}
	for _, it := range init.Items {
		known[it.UniqueName] = true
	}
	for _, mo := range init.Monsters {
		known[mo.UniqueName] = true
	}
	for _, n := range init.NPCs {
		known[n.UniqueName] = true
	}
	return known
}
