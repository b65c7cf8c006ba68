package errdocs_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/errdocs"
)

// Example_render demonstrates how to render a docs directory to HTML.
func Example_render() {
	// Create a temporary docs directory for the example
	dir, err := os.MkdirTemp("", "errdocs-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	page := "# E0001: variable assigned before its declaration\n\n" +
		"```javascript\nx = 1; let x;\n```\n"
	if err := os.WriteFile(filepath.Join(dir, "E0001.md"), []byte(page), 0644); err != nil {
		log.Fatal(err)
	}

	svc, err := errdocs.New(dir)
	if err != nil {
		log.Fatal(err)
	}

	// Render skips validation, so no linter is needed.
	html, err := svc.Render(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(html)

	// Output:
	// <h2><a class="self-reference" href="#E0001">E0001: variable assigned before its declaration</a></h2><figure><pre><code>x = 1; let x;
	// </code></pre></figure>
}

// Example_validate shows the problems reported for a page without samples.
func Example_validate() {
	dir, err := os.MkdirTemp("", "errdocs-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, "E0002.md"), []byte("# E0003: wrong code\n"), 0644); err != nil {
		log.Fatal(err)
	}

	svc, err := errdocs.New(dir)
	if err != nil {
		log.Fatal(err)
	}

	// The linter is only started for code samples, and this page has none.
	err = svc.Validate(context.Background())

	var verr *errdocs.ValidationError
	if errors.As(err, &verr) {
		for _, p := range verr.Problems {
			fmt.Printf("%s: %s\n", filepath.Base(p.Path), p.Message)
		}
	}

	// Output:
	// E0002.md: file name doesn't match error code in title (E0003)
	// E0002.md: missing code blocks
}
