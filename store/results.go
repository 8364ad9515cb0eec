package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/minaorangina/arcade/registry"
)

var ErrInvalidResult = errors.New("invalid result")

// Result is one won session
type Result struct {
	ID           string        `json:"id"`
	ArcadeID     string        `json:"arcadeID"`
	DepartmentID string        `json:"departmentID"`
	Kind         registry.Kind `json:"kind"`
	StartedAt    time.Time     `json:"startedAt"`
	WonAt        time.Time     `json:"wonAt"`
}

func (r Result) Duration() time.Duration {
	return r.WonAt.Sub(r.StartedAt)
}

func (r Result) validate() error {
	switch {
	case r.ID == "":
		return fmt.Errorf("%w: id is required", ErrInvalidResult)
	case r.DepartmentID == "":
		return fmt.Errorf("%w: department id is required", ErrInvalidResult)
	case !r.Kind.Valid():
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidResult, int(r.Kind))
	}
	return nil
}

type ResultStore interface {
	Record(ctx context.Context, r Result) error
	// List returns results newest first, for one department or all of them
	// when departmentID is empty
	List(ctx context.Context, departmentID string) ([]Result, error)
	Close() error
}

type InMemoryResultStore struct {
	mu      sync.RWMutex
	results []Result
}

func NewInMemoryResultStore() *InMemoryResultStore {
	return &InMemoryResultStore{results: []Result{}}
}

func (s *InMemoryResultStore) Record(ctx context.Context, r Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
	return nil
}

func (s *InMemoryResultStore) List(ctx context.Context, departmentID string) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Result{}
	for i := len(s.results) - 1; i >= 0; i-- {
		r := s.results[i]
		if departmentID == "" || r.DepartmentID == departmentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *InMemoryResultStore) Close() error {
	return nil
}
