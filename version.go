package errdocs

import _ "embed"

// Version is the release version of errdocs.
//
//go:embed VERSION
var Version string
