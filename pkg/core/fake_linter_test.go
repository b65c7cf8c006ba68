package core_test

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/errdocs/pkg/core"
)

// fakeLinter reports diagnostics for any sample containing a known marker.
// A sample containing "SLOW" blocks until its context is done; one
// containing "CRASH" fails.
type fakeLinter struct {
	codes    map[string][]string // marker -> codes reported
	startErr error

	starts   atomic.Int32
	closes   atomic.Int32
	sessions atomic.Int32
	open     atomic.Int32
}

func newFakeLinter(codes map[string][]string) *fakeLinter {
	return &fakeLinter{codes: codes}
}

func (f *fakeLinter) Start(ctx context.Context) (core.LintProcess, error) {
	f.starts.Add(1)
	if f.startErr != nil {
		return nil, f.startErr
	}
	return &fakeProcess{linter: f}, nil
}

type fakeProcess struct {
	linter *fakeLinter
	once   sync.Once
}

func (p *fakeProcess) NewSession(ctx context.Context) (core.LintSession, error) {
	p.linter.sessions.Add(1)
	p.linter.open.Add(1)
	return &fakeSession{linter: p.linter}, nil
}

func (p *fakeProcess) Close() error {
	p.once.Do(func() { p.linter.closes.Add(1) })
	return nil
}

type fakeSession struct {
	linter *fakeLinter
	text   string
}

func (s *fakeSession) ReplaceText(r core.Range, text string) error {
	updated, err := core.ApplyEdit(s.text, r, text)
	if err != nil {
		return err
	}
	s.text = updated
	return nil
}

func (s *fakeSession) Lint(ctx context.Context) ([]core.Diagnostic, error) {
	if strings.Contains(s.text, "SLOW") {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
		}
	}
	if strings.Contains(s.text, "CRASH") {
		return nil, errCrash
	}
	var diags []core.Diagnostic
	for marker, codes := range s.linter.codes {
		if !strings.Contains(s.text, marker) {
			continue
		}
		for _, code := range codes {
			diags = append(diags, core.Diagnostic{Code: code, Message: "reported by fake"})
		}
	}
	return diags, nil
}

func (s *fakeSession) Close() error {
	s.linter.open.Add(-1)
	return nil
}
