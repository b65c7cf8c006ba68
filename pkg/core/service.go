package core

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
)

// Service orchestrates loading, validating and rendering the corpus.
type Service struct {
	repo      Repository
	validator *Validator
	renderer  *Renderer

	mu            sync.RWMutex
	lastDocuments int
	lastProblems  int
	lastCheck     *time.Time
}

// NewService creates a new Service.
func NewService(repo Repository, validator *Validator, renderer *Renderer) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		renderer:  renderer,
	}
}

// Documents loads the corpus sorted by file name error code.
// An empty corpus is an error.
func (s *Service) Documents(ctx context.Context) ([]Document, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		if src, ok := s.repo.(fmt.Stringer); ok {
			return nil, fmt.Errorf("%w in %s", ErrEmptyCorpus, src)
		}
		return nil, ErrEmptyCorpus
	}
	SortDocuments(docs)
	return docs, nil
}

// SortDocuments orders docs by file name error code, then by path.
func SortDocuments(docs []Document) {
	slices.SortStableFunc(docs, func(a, b Document) int {
		return cmp.Or(
			cmp.Compare(a.FilePathErrorCode(), b.FilePathErrorCode()),
			cmp.Compare(a.FilePath, b.FilePath),
		)
	})
}

// Check loads the corpus and returns every problem found.
func (s *Service) Check(ctx context.Context) ([]Problem, error) {
	docs, err := s.Documents(ctx)
	if err != nil {
		return nil, err
	}
	return s.check(ctx, docs)
}

func (s *Service) check(ctx context.Context, docs []Document) ([]Problem, error) {
	problems, err := s.validator.Validate(ctx, docs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s.mu.Lock()
	s.lastDocuments = len(docs)
	s.lastProblems = len(problems)
	s.lastCheck = &now
	s.mu.Unlock()

	return problems, nil
}

// Validate is Check folded into a single error: a *ValidationError when any
// problem was found.
func (s *Service) Validate(ctx context.Context) error {
	problems, err := s.Check(ctx)
	if err != nil {
		return err
	}
	if len(problems) != 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Build validates the corpus and, when it is clean, renders it to HTML.
func (s *Service) Build(ctx context.Context) (string, error) {
	docs, err := s.Documents(ctx)
	if err != nil {
		return "", err
	}
	problems, err := s.check(ctx, docs)
	if err != nil {
		return "", err
	}
	if len(problems) != 0 {
		return "", &ValidationError{Problems: problems}
	}
	return s.renderer.RenderCorpus(docs)
}

// Render renders the corpus to HTML without validating it.
func (s *Service) Render(ctx context.Context) (string, error) {
	docs, err := s.Documents(ctx)
	if err != nil {
		return "", err
	}
	return s.renderer.RenderCorpus(docs)
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, ErrNotWatchable
	}
	return w.Watch(ctx)
}
