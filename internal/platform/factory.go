package platform

import (
	"fmt"

	"github.com/aretw0/errdocs/pkg/core"
)

// New assembles the service for the docs directory dir.
//
//	svc, err := errdocs.New("./docs/errors", errdocs.WithJobs(4))
func New(dir string, opts ...Option) (*core.Service, error) {
	o := resolveOptions(opts)
	parser := newParser(o)

	// 1. Document source
	repo, err := initRepository(dir, o, parser)
	if err != nil {
		return nil, err
	}

	// 2. Linting engine and validator
	validator := core.NewValidator(initLinter(dir, o),
		core.WithLogger(o.logger),
		core.WithTimeout(o.timeout),
		core.WithJobs(o.jobs),
	)

	// 3. Domain service
	return core.NewService(repo, validator, core.NewRenderer(parser)), nil
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
