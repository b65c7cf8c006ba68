// Package errdocs is the Composition Root for the errdocs application.
//
// It connects the error documentation domain (parsing, validation and
// rendering) with the infrastructure adapters (the docs directory on disk,
// the external linter and the diagnostics cache).
//
// Each page of the corpus documents one error code, e.g. docs/errors/E0001.md:
//
//	# E0001: variable assigned before its declaration
//
//	```javascript
//	x = 1; let x;
//	```
//
// Validation checks that:
//
//   - The title code matches the file name.
//   - The page has at least one code block.
//   - The first code block makes the linter report the documented code and
//     nothing else, and every later code block lints clean.
//
// Usage:
//
//	svc, err := errdocs.New("./docs/errors",
//		errdocs.WithLinterCommand("quick-lint-js", "--stdin", "--output-format=vim-qflist-json"),
//		errdocs.WithLogger(logger),
//	)
//
//	// Validate, then render the corpus to HTML
//	html, err := svc.Build(ctx)
package errdocs
