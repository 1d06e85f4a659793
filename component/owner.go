package component

import "reflect"

// Category is the kind of owner a lookup is scoped to.
type Category int

const (
	CategoryEntity Category = iota
	CategoryCondition
	CategoryMapObject
	CategoryWorldObject
	CategoryGame
	CategoryWorld
)

var categoryNames = [...]string{
	CategoryEntity:      "entity",
	CategoryCondition:   "condition",
	CategoryMapObject:   "map",
	CategoryWorldObject: "world_object",
	CategoryGame:        "game",
	CategoryWorld:       "world",
}

// String returns the category's lowercase name.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// Categories lists every category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryEntity,
		CategoryCondition,
		CategoryMapObject,
		CategoryWorldObject,
		CategoryGame,
		CategoryWorld,
	}
}

// Owner exposes attached components. A nil slice means the owner's
// collection was never initialized.
type Owner interface {
	Components() []any
}

// Entity is an owner with a stable numeric id.
type Entity interface {
	Owner
	ID() int
}

// Condition is a health condition. Conditions that also implement Owner
// carry components; the rest never do.
type Condition interface {
	LoadID() int
}

// WorldObject is an owner on the world map with a stable numeric id.
type WorldObject interface {
	Owner
	ID() int
}

// Aliaser lets a component answer for a type it is not assignable to, in
// the manner of errors.As. As sets *target and returns true on a match.
type Aliaser interface {
	As(target any) bool
}

// Find returns the first component of type T.
//
// Components whose dynamic type is exactly T win over components that are
// merely assignable to T, even when the latter come first. The second pass
// also consults Aliaser.
func Find[T any](comps []any) (T, bool) {
	want := reflect.TypeFor[T]()
	for _, c := range comps {
		if c != nil && reflect.TypeOf(c) == want {
			return c.(T), true
		}
	}
	for _, c := range comps {
		if v, ok := c.(T); ok {
			return v, true
		}
		if a, ok := c.(Aliaser); ok {
			var v T
			if a.As(&v) {
				return v, true
			}
		}
	}
	var zero T
	return zero, false
}

// scan reads o's components and finds T. A nil collection or a panic while
// reading it counts as absent.
func scan[T any](o Owner) (v T, found bool) {
	defer func() {
		if recover() != nil {
			var zero T
			v, found = zero, false
		}
	}()
	comps := o.Components()
	if comps == nil {
		return v, false
	}
	return Find[T](comps)
}
