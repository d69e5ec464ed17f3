package emit

import (
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/ardnew/scribe/render"
)

// NamePolicy rewrites declared names, for example to match the naming
// convention of the target language.
type NamePolicy func(string) string

// NamePolicyContext carries the policy applied by [Declaration]. Without a
// provider, names are used as given.
var NamePolicyContext = render.NewContext[NamePolicy]("name-policy")

// Common policies.
var (
	CamelCase          NamePolicy = strcase.ToLowerCamel
	PascalCase         NamePolicy = strcase.ToCamel
	SnakeCase          NamePolicy = strcase.ToSnake
	ScreamingSnakeCase NamePolicy = strcase.ToScreamingSnake
	KebabCase          NamePolicy = strcase.ToKebab
)

var namePolicies = map[string]NamePolicy{
	"camel":           CamelCase,
	"pascal":          PascalCase,
	"snake":           SnakeCase,
	"screaming-snake": ScreamingSnakeCase,
	"kebab":           KebabCase,
	"none":            nil,
}

// ParseNamePolicy returns the policy named s: "camel", "pascal", "snake",
// "screaming-snake", "kebab" or "none". The policy for "none" is nil.
func ParseNamePolicy(s string) (NamePolicy, bool) {
	p, ok := namePolicies[strings.ToLower(strings.TrimSpace(s))]

	return p, ok
}
