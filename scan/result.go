package scan

import "slices"

// Failure records a method whose body could not be inspected.
type Failure struct {
	Ref MethodRef
	Err error
}

// Result is the outcome of a scan. A published Result is never mutated.
type Result struct {
	// Routes maps each route to the methods that call its shape, in scan
	// order and without duplicates.
	Routes map[Route][]MethodRef

	Scanned  int
	Skipped  int
	Failures []Failure

	// byRef indexes Routes by method, each list in Route order.
	byRef map[MethodRef][]Route
}

func newResult() *Result {
	return &Result{
		Routes: make(map[Route][]MethodRef),
		byRef:  make(map[MethodRef][]Route),
	}
}

// EmptyResult returns a Result with no routes.
func EmptyResult() *Result {
	return newResult()
}

// Empty reports whether no method was routed.
func (r *Result) Empty() bool {
	if r == nil {
		return true
	}
	for _, refs := range r.Routes {
		if len(refs) > 0 {
			return false
		}
	}
	return true
}

// Methods returns the methods recorded for route.
func (r *Result) Methods(route Route) []MethodRef {
	if r == nil {
		return nil
	}
	return slices.Clone(r.Routes[route])
}

// RoutesFor returns the routes ref was recorded under, in Route order.
func (r *Result) RoutesFor(ref MethodRef) []Route {
	if r == nil {
		return nil
	}
	return slices.Clone(r.byRef[ref])
}

// Total returns the number of route memberships.
func (r *Result) Total() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, refs := range r.Routes {
		n += len(refs)
	}
	return n
}

func (r *Result) merge(o *Result) {
	for _, route := range Routes() {
		for _, ref := range o.Routes[route] {
			r.add(route, ref)
		}
	}
	r.Scanned += o.Scanned
	r.Skipped += o.Skipped
	r.Failures = append(r.Failures, o.Failures...)
}

func (r *Result) add(route Route, ref MethodRef) {
	routes := r.byRef[ref]
	i, found := slices.BinarySearch(routes, route)
	if found {
		return
	}
	r.byRef[ref] = slices.Insert(routes, i, route)
	r.Routes[route] = append(r.Routes[route], ref)
}
