package scan

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Options configures a scan.
type Options struct {
	// SkipList excludes modules, types and methods. Nil uses DefaultSkipList.
	SkipList SkipList

	// Shapes are matched in order. Nil uses DefaultShapes.
	Shapes []Shape

	// Workers bounds how many modules are scanned at once. Zero or less uses
	// GOMAXPROCS.
	Workers int
}

func (o Options) withDefaults() Options {
	if o.SkipList == nil {
		o.SkipList = DefaultSkipList()
	}
	if o.Shapes == nil {
		o.Shapes = DefaultShapes()
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// Scan inspects every eligible method in u and records which methods call a
// lookup of a known shape.
//
// Contract:
//   - Concurrency: modules are scanned in parallel; u must not change while
//     the scan runs. The Result lists modules in the order of u.Modules.
//   - Errors: a method whose body fails, or whose body or type matching
//     panics, is recorded in Result.Failures and does not stop the scan.
//     Scan itself fails for a nil hierarchy, an invalid skip list or a
//     cancelled context, and returns ErrScanPanicked rather than crashing
//     if a module panics outside any one method.
//   - Context: checked between methods.
func Scan(ctx context.Context, u Universe, opts Options) (*Result, error) {
	if u.Hierarchy == nil {
		return nil, ErrNilHierarchy
	}
	opts = opts.withDefaults()
	if err := opts.SkipList.Validate(); err != nil {
		return nil, err
	}

	parts := make([]*Result, len(u.Modules))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, mod := range u.Modules {
		if opts.SkipList.SkipsModule(mod.Name) {
			continue
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: module %s: %v", ErrScanPanicked, mod.Name, r)
				}
			}()
			parts[i], err = scanModule(gctx, mod, u.Hierarchy, opts)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := newResult()
	for _, part := range parts {
		if part != nil {
			res.merge(part)
		}
	}
	return res, nil
}

func scanModule(ctx context.Context, mod Module, h Hierarchy, opts Options) (*Result, error) {
	res := newResult()
	for _, typ := range mod.Types {
		if opts.SkipList.SkipsType(typ.FullName) {
			res.Skipped += len(typ.Methods)
			continue
		}
		for _, m := range typ.Methods {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if m.Abstract || m.Generic || m.Body == nil || opts.SkipList.SkipsMethod(describe(typ, m)) {
				res.Skipped++
				continue
			}
			ref := MethodRef{Module: mod.Name, Type: typ.FullName, Method: m.Name}
			routes, err := inspect(m, opts.Shapes, h)
			if err != nil {
				res.Failures = append(res.Failures, Failure{Ref: ref, Err: err})
				continue
			}
			res.Scanned++
			for _, route := range routes {
				res.add(route, ref)
			}
		}
	}
	return res, nil
}

// inspect reads the body of m and matches its calls against shapes. A
// panic from the body or from the host hierarchy is returned as an error.
func inspect(m Method, shapes []Shape, h Hierarchy) (routes []Route, err error) {
	defer func() {
		if r := recover(); r != nil {
			routes, err = nil, fmt.Errorf("inspecting %s: panic: %v", m.Name, r)
		}
	}()
	calls, err := m.Body()
	if err != nil {
		return nil, err
	}
	for _, c := range calls {
		if route, ok := matchShape(c, shapes, h); ok {
			routes = append(routes, route)
		}
	}
	return routes, nil
}
