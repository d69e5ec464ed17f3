// Package emit provides the components that describe an output tree of
// source files, and [Render], which materializes that tree.
//
//	files, err := emit.Render(ctx, emit.SourceDirectory{Path: "src", Children: []any{
//		emit.SourceFile{Path: "models.ts", Children: []any{
//			"export interface ", emit.Declaration{Name: "Widget", Refkey: widget}, " {}\n",
//		}},
//		emit.SourceFile{Path: "index.ts", Children: []any{
//			"export const w: ", emit.Reference{Refkey: widget}, " = {};\n",
//		}},
//	}})
//
// Every [SourceFile] and [SourceDirectory] opens a module scope in the
// render's [bind.Binder]; [Scope] opens a local one. A [Reference] resolves
// its refkey through the binder, whether the declaration precedes or follows
// it, and records an import in the referencing file when the declaration
// lives in another module. Each file's import header is written after every
// reference in the tree has resolved.
package emit
