// Package main provides the CLI entrypoint for descriptor-lint.
//
// descriptor-lint checks YAML serializer definition files before they ship:
//   - Parses each file into serializer definitions
//   - Reports structural diagnostics (duplicate keys, unknown embed modes,
//     dangling extends/serializer references)
//   - Optionally dumps the fully built descriptors for review
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"document-composer/descriptor"
)

func main() {
	verbose := flag.Bool("v", false, "dump built descriptors")
	strict := flag.Bool("strict", false, "treat warnings as errors")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: descriptor-lint [-v] [-strict] <file.yaml> ...")
		os.Exit(2)
	}

	failed := false

	for _, path := range flag.Args() {
		if !lintFile(path, *verbose, *strict) {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

func lintFile(path string, verbose, strict bool) bool {
	f, err := descriptor.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return false
	}

	diags := descriptor.Validate(f)
	for _, d := range diags.All() {
		fmt.Printf("%s: %s: %s\n", path, d.Severity, d.String())
	}

	if diags.HasErrors() || (strict && len(diags.Warnings) > 0) {
		return false
	}

	built, err := f.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return false
	}

	fmt.Printf("%s: %d serializer(s) ok\n", path, len(built))

	if verbose {
		spew.Dump(built)
	}

	return true
}
