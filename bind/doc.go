// Package bind tracks the scopes and declarations of generated output and
// resolves references between them.
//
// Scopes form a tree rooted at the single global scope: module scopes (one
// per output file or directory) hang off the global scope or off other
// modules, and local scopes nest inside modules. Declarations are registered
// in a scope under a name and, optionally, a [Refkey]. Any scope may resolve
// a refkey to its declaration, yielding the scope path between the two.
//
// A reference may be resolved before its declaration exists:
// [Binder.ResolveOrWait] queues a callback that runs when the refkey is
// first declared. A Binder is not safe for concurrent use.
package bind
