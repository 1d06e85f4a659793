package scan

import "github.com/jonwraymond/simcache/component"

// Route is the cached lookup that replaces a matched call.
type Route int

const (
	RouteNone Route = iota
	RouteMapComp
	RouteGameComp
	RouteWorldComp
	RouteWorldObjectComp
	RouteEntityComp
	RouteEntityTryComp
	RouteConditionTryComp
)

var routeNames = [...]string{
	RouteNone:             "none",
	RouteMapComp:          "map_comp",
	RouteGameComp:         "game_comp",
	RouteWorldComp:        "world_comp",
	RouteWorldObjectComp:  "world_object_comp",
	RouteEntityComp:       "entity_comp",
	RouteEntityTryComp:    "entity_try_comp",
	RouteConditionTryComp: "condition_try_comp",
}

func (r Route) String() string {
	if r < 0 || int(r) >= len(routeNames) {
		return "unknown"
	}
	return routeNames[r]
}

// Category returns the owner category the route's lookup is scoped to.
func (r Route) Category() component.Category {
	switch r {
	case RouteMapComp:
		return component.CategoryMapObject
	case RouteGameComp:
		return component.CategoryGame
	case RouteWorldComp:
		return component.CategoryWorld
	case RouteWorldObjectComp:
		return component.CategoryWorldObject
	case RouteConditionTryComp:
		return component.CategoryCondition
	default:
		return component.CategoryEntity
	}
}

// Routes lists every route except RouteNone.
func Routes() []Route {
	return []Route{
		RouteMapComp,
		RouteGameComp,
		RouteWorldComp,
		RouteWorldObjectComp,
		RouteEntityComp,
		RouteEntityTryComp,
		RouteConditionTryComp,
	}
}

// Shape describes a generic lookup call and where it is rerouted.
type Shape struct {
	Method   string
	Dispatch Dispatch
	Params   int
	// Base is the type the call's type argument must be assignable to.
	Base  string
	Route Route
}

// Matches reports whether c has this shape under h.
func (s Shape) Matches(c CallSite, h Hierarchy) bool {
	return c.Generic &&
		c.Method == s.Method &&
		c.Dispatch == s.Dispatch &&
		c.Params == s.Params &&
		h.AssignableTo(c.TypeArg, s.Base)
}

// Component base type names used by DefaultShapes.
const (
	BaseMapComponent   = "MapComponent"
	BaseGameComponent  = "GameComponent"
	BaseWorldComponent = "WorldComponent"
	BaseWorldObject    = "WorldObjectComp"
	BaseThingComp      = "ThingComp"
	BaseHediffComp     = "HediffComp"
)

// DefaultShapes returns the lookup shapes in match order. For one call the
// first matching shape wins.
func DefaultShapes() []Shape {
	return []Shape{
		{Method: "GetComponent", Dispatch: DispatchVirtual, Params: 0, Base: BaseMapComponent, Route: RouteMapComp},
		{Method: "GetComponent", Dispatch: DispatchVirtual, Params: 0, Base: BaseGameComponent, Route: RouteGameComp},
		{Method: "GetComponent", Dispatch: DispatchVirtual, Params: 0, Base: BaseWorldComponent, Route: RouteWorldComp},
		{Method: "GetComponent", Dispatch: DispatchVirtual, Params: 0, Base: BaseWorldObject, Route: RouteWorldObjectComp},
		{Method: "GetComp", Dispatch: DispatchVirtual, Params: 0, Base: BaseThingComp, Route: RouteEntityComp},
		{Method: "TryGetComp", Dispatch: DispatchStatic, Params: 1, Base: BaseThingComp, Route: RouteEntityTryComp},
		{Method: "TryGetComp", Dispatch: DispatchStatic, Params: 1, Base: BaseHediffComp, Route: RouteConditionTryComp},
	}
}

func matchShape(c CallSite, shapes []Shape, h Hierarchy) (Route, bool) {
	for _, s := range shapes {
		if s.Matches(c, h) {
			return s.Route, true
		}
	}
	return RouteNone, false
}
