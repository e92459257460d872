package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harwoodcarpentry/tracker-backend/internal/tracking/domain"
)

// allocateAttempts bounds the id-allocation retry loop. Two concurrent
// creates can compute the same max sequence; the loser hits the store's
// uniqueness constraint and recomputes.
const allocateAttempts = 5

// ProjectStore is the persistence surface the service needs. Implemented by
// repository.ProjectRepository; tests substitute an in-memory fake.
type ProjectStore interface {
	Get(ctx context.Context, id string) (*domain.Project, error)
	Insert(ctx context.Context, p *domain.Project) error
	Upsert(ctx context.Context, p *domain.Project) error
	MaxSequenceForYear(ctx context.Context, year int) (int, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// ProjectCache is an optional read-through cache for projects. A nil cache
// disables caching.
type ProjectCache interface {
	Get(ctx context.Context, id string) (*domain.Project, bool)
	Set(ctx context.Context, p *domain.Project)
	Invalidate(ctx context.Context, id string)
}

// ProjectService handles project business logic: validation, step
// normalization and id allocation.
type ProjectService struct {
	store ProjectStore
	cache ProjectCache
	now   func() time.Time
}

func NewProjectService(store ProjectStore, cache ProjectCache) *ProjectService {
	return &ProjectService{
		store: store,
		cache: cache,
		now:   time.Now,
	}
}

// Get returns the project with the given id. Stored steps are completed
// against the template so old rows stay schema-consistent after template
// changes.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: missing id", domain.ErrInvalidProject)
	}

	if s.cache != nil {
		if p, ok := s.cache.Get(ctx, id); ok {
			return p, nil
		}
	}

	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Steps = domain.NormalizeStepList(p.Steps)

	if s.cache != nil {
		s.cache.Set(ctx, p)
	}
	return p, nil
}

// Upsert stores the project under an explicit id, creating or fully
// replacing it. rawSteps is the decoded JSON "steps" value from the request.
func (s *ProjectService) Upsert(ctx context.Context, id, clientName, status string, rawSteps any) (*domain.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: missing id", domain.ErrInvalidProject)
	}
	clientName, status, err := validateFields(clientName, status)
	if err != nil {
		return nil, err
	}

	p := &domain.Project{
		ID:         id,
		ClientName: clientName,
		Status:     status,
		Steps:      domain.NormalizeSteps(rawSteps),
	}
	if err := s.store.Upsert(ctx, p); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return p, nil
}

// Create allocates the next id for the current year and inserts the project.
// A uniqueness conflict from a concurrent allocation is recomputed and
// retried, never surfaced to the caller.
func (s *ProjectService) Create(ctx context.Context, clientName, status string, rawSteps any) (*domain.Project, error) {
	clientName, status, err := validateFields(clientName, status)
	if err != nil {
		return nil, err
	}
	steps := domain.NormalizeSteps(rawSteps)
	year := s.now().Year()

	for i := 0; i < allocateAttempts; i++ {
		maxSeq, err := s.store.MaxSequenceForYear(ctx, year)
		if err != nil {
			return nil, err
		}

		p := &domain.Project{
			ID:         domain.FormatProjectID(year, maxSeq+1),
			ClientName: clientName,
			Status:     status,
			Steps:      steps,
		}

		err = s.store.Insert(ctx, p)
		if err == nil {
			if s.cache != nil {
				s.cache.Invalidate(ctx, p.ID)
			}
			return p, nil
		}
		// lost the allocation race, recompute the sequence
		if errors.Is(err, domain.ErrDuplicateID) {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to allocate unique project id after %d attempts", allocateAttempts)
}

// CountByStatus reports how many projects carry each status label.
func (s *ProjectService) CountByStatus(ctx context.Context) (map[string]int, error) {
	return s.store.CountByStatus(ctx)
}

func validateFields(clientName, status string) (string, string, error) {
	clientName = strings.TrimSpace(clientName)
	status = strings.TrimSpace(status)
	if clientName == "" || status == "" {
		return "", "", fmt.Errorf("%w: missing client_name or status", domain.ErrInvalidProject)
	}
	return clientName, status, nil
}
