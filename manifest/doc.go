// Package manifest describes output trees in YAML.
//
// A manifest lists files and directories whose items declare symbols, refer
// to them by key, and splice text, code templates and expression results.
// [Manifest.Tree] turns it into components for package emit, and
// [Manifest.Check] reports problems without rendering.
//
//	naming: pascal
//	data:
//	  fields: [id, name]
//	files:
//	  - dir: src
//	    items:
//	      - file: model.ts
//	        items:
//	          - declare: widget
//	            items:
//	              - code: |
//	                  export interface {{name}} {
//	                    {{expr:join(fields, ": string;\n") + ": string;"}}
//	                  }
//	      - file: index.ts
//	        items:
//	          - code: |
//	              export const w: {{ref:widget}} = load();
//
// Code templates accept three placeholders: {{ref:KEY}} names the
// declaration registered under KEY, {{expr:SOURCE}} evaluates an expression
// against data, and {{name}} names the enclosing declaration. Any item may
// carry a when guard, an expression that must hold for the item to appear.
package manifest
