// Package render turns a tree of components into nested text.
//
// A component is any value implementing [Component]. Rendering calls it with
// a [Frame] and renders whatever it returns in its place: strings are
// emitted, numbers are formatted, booleans and nil vanish, slices are
// flattened, and nested components each get their own [Node]. The nodes keep
// their nesting until [Node.Text] flattens them, so a component can register
// a transform (see [Frame.Transform] and [Indent]) over exactly its own
// output.
//
// Values that are not known during the synchronous pass are expressed with
// [Session.NewPending], and content that must wait for the synchronous pass,
// such as a summary of what it produced, with [Session.Defer]. [Render] drives both to
// completion before returning.
//
// Ambient values flow down the tree through a [Context]:
//
//	var Lang = render.NewContextDefault("language", "go")
//
//	root := Lang.Provider("python", render.Func(func(f *render.Frame) (any, error) {
//		lang, _ := Lang.Use(f)
//		return "# " + lang, nil
//	}))
package render
