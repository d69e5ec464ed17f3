package cmd

import "github.com/ardnew/scribe/pkg"

var (
	ErrYAMLMarshal = pkg.NewError("marshal YAML")
	ErrJSONMarshal = pkg.NewError("marshal JSON")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
	ErrWriteOutput = pkg.NewError("write output file")
	ErrCheckFailed = pkg.NewError("manifest has problems")
)
