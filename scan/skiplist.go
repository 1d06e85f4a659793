package scan

import (
	"fmt"
	"strings"
)

// Scope is what a Matcher is compared against.
type Scope string

const (
	ScopeModule Scope = "module"
	ScopeType   Scope = "type"
	ScopeMethod Scope = "method"
)

// Matcher excludes anything in its scope whose name contains Contains.
type Matcher struct {
	Scope    Scope  `yaml:"scope"`
	Contains string `yaml:"contains"`
}

// Validate checks the matcher's scope and pattern.
func (m Matcher) Validate() error {
	switch m.Scope {
	case ScopeModule, ScopeType, ScopeMethod:
	default:
		return fmt.Errorf("%w: unknown scope %q", ErrInvalidMatcher, m.Scope)
	}
	if m.Contains == "" {
		return fmt.Errorf("%w: empty pattern for scope %s", ErrInvalidMatcher, m.Scope)
	}
	return nil
}

// SkipList is an ordered list of exclusion matchers.
type SkipList []Matcher

// Validate checks every matcher.
func (l SkipList) Validate() error {
	for i, m := range l {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("skip list entry %d: %w", i, err)
		}
	}
	return nil
}

func (l SkipList) matches(scope Scope, name string) bool {
	for _, m := range l {
		if m.Scope == scope && strings.Contains(name, m.Contains) {
			return true
		}
	}
	return false
}

// SkipsModule reports whether modules named name are excluded.
func (l SkipList) SkipsModule(name string) bool {
	return l.matches(ScopeModule, name)
}

// SkipsType reports whether the type with this full name is excluded.
func (l SkipList) SkipsType(fullName string) bool {
	return l.matches(ScopeType, fullName)
}

// SkipsMethod reports whether the method with this description is excluded.
func (l SkipList) SkipsMethod(description string) bool {
	return l.matches(ScopeMethod, description)
}

// DefaultSkipList excludes runtime libraries, tooling that rewrites code
// itself, and known methods whose bodies cannot be rerouted safely.
func DefaultSkipList() SkipList {
	var l SkipList
	for _, name := range []string{
		"System", "Cecil", "Multiplayer", "Prepatcher", "HeavyMelee", "0Harmony",
		"UnityEngine", "mscorlib", "ICSharpCode", "Newtonsoft", "TranspilerExplorer",
	} {
		l = append(l, Matcher{Scope: ScopeModule, Contains: name})
	}
	for _, name := range []string{
		"AnimalGenetics.ColonyManager+JobsWrapper", "AutoMachineTool",
		"NightVision.CombatHelpers", "RJWSexperience.UI.SexStatusWindow",
	} {
		l = append(l, Matcher{Scope: ScopeType, Contains: name})
	}
	for _, name := range []string{
		"Numbers.MainTabWindow_Numbers", "Numbers.OptionsMaker", "<PawnSelector>g__Action",
		"<AllBuildingsColonistWithComp>", "<FailOnOwnerStatus>", "Transpiler",
	} {
		l = append(l, Matcher{Scope: ScopeMethod, Contains: name})
	}
	return l
}
