package component

import (
	"testing"
)

type comp interface{ Label() string }

type compPower struct{ watts int }

func (c *compPower) Label() string { return "power" }

// compPowerBattery embeds compPower so it is assignable to comp but has a
// different dynamic type than *compPower.
type compPowerBattery struct{ compPower }

type compGlower struct{}

func (c *compGlower) Label() string { return "glower" }

// compLegacyPower answers for *compPower through As.
type compLegacyPower struct{ inner *compPower }

func (c *compLegacyPower) As(target any) bool {
	if p, ok := target.(**compPower); ok {
		*p = c.inner
		return true
	}
	return false
}

type thing struct {
	id    int
	comps []any
	reads int
	boom  bool
}

func (t *thing) ID() int { return t.id }

func (t *thing) Components() []any {
	t.reads++
	if t.boom {
		panic("comps not initialized")
	}
	return t.comps
}

type hediff struct {
	load  int
	comps []any
}

func (h *hediff) LoadID() int { return h.load }

func (h *hediff) Components() []any { return h.comps }

type bareHediff struct{ load int }

func (h *bareHediff) LoadID() int { return h.load }

type container struct {
	comps []any
	reads int
}

func (c *container) Components() []any {
	c.reads++
	return c.comps
}

func TestFind_ExactBeforeAssignable(t *testing.T) {
	battery := &compPowerBattery{compPower{watts: 1}}
	power := &compPower{watts: 2}
	alias := &compLegacyPower{inner: &compPower{watts: 3}}
	comps := []any{&compGlower{}, battery, alias, power}

	got, ok := Find[*compPower](comps)
	if !ok || got != power {
		t.Errorf("Find[*compPower]() = (%v, %v), want exact match", got, ok)
	}
}

func TestFind_InterfaceType(t *testing.T) {
	glower := &compGlower{}
	comps := []any{nil, 42, glower, &compPower{}}

	got, ok := Find[comp](comps)
	if !ok || got != comp(glower) {
		t.Errorf("Find[comp]() = (%v, %v), want first assignable", got, ok)
	}
}

func TestFind_Aliaser(t *testing.T) {
	inner := &compPower{watts: 9}
	got, ok := Find[*compPower]([]any{&compGlower{}, &compLegacyPower{inner: inner}})
	if !ok || got != inner {
		t.Errorf("Find[*compPower]() = (%v, %v), want aliased component", got, ok)
	}

	exact := &compPower{}
	got, _ = Find[*compPower]([]any{&compLegacyPower{inner: inner}, exact})
	if got != exact {
		t.Error("alias preferred over exact match")
	}
}

func TestFind_Absent(t *testing.T) {
	if _, ok := Find[*compPower](nil); ok {
		t.Error("Find(nil) found a component")
	}
	if _, ok := Find[*compPower]([]any{&compGlower{}}); ok {
		t.Error("Find() found a component of the wrong type")
	}
}

func TestCategory_String(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryEntity, "entity"},
		{CategoryCondition, "condition"},
		{CategoryMapObject, "map"},
		{CategoryWorldObject, "world_object"},
		{CategoryGame, "game"},
		{CategoryWorld, "world"},
		{Category(99), "unknown"},
		{Category(-1), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.cat.String(); got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
	}
	if len(Categories()) != 6 {
		t.Errorf("len(Categories()) = %d, want 6", len(Categories()))
	}
}
