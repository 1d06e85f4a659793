// Package intercept models the before/after call-interception contract the
// cache layer relies on.
//
// A Chain wraps one target function. Hooks observe the call twice: Before may
// substitute the result and suppress the target; After sees the arguments
// and the final result. Hooks are ordered by priority so the short-circuiting
// cache hook gets the first chance to answer a call.
package intercept
