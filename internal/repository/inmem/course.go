// Package inmem provides in-memory stores with the same behavior as the
// PostgreSQL repositories, including the per-owner uniqueness constraints.
// Used by unit tests; no persistence.
package inmem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jomadlcrz/class-schedule-backend/internal/model"
	"github.com/jomadlcrz/class-schedule-backend/internal/service"
)

// CourseStore is an in-memory implementation of service.CourseStore.
type CourseStore struct {
	mu      sync.Mutex
	courses map[string]model.Course
	seq     int
}

func NewCourseStore() *CourseStore {
	return &CourseStore{courses: make(map[string]model.Course)}
}

func (s *CourseStore) ListByOwner(_ context.Context, ownerEmail string) ([]model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var courses []model.Course
	for _, c := range s.courses {
		if c.OwnerEmail == ownerEmail {
			courses = append(courses, c)
		}
	}
	sort.Slice(courses, func(i, j int) bool {
		return courses[i].CreatedAt.After(courses[j].CreatedAt)
	})
	return courses, nil
}

func (s *CourseStore) GetByID(_ context.Context, id string) (*model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.courses[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *CourseStore) Create(_ context.Context, c *model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Mirror the unique indexes the real store declares.
	for _, other := range s.courses {
		if other.OwnerEmail != c.OwnerEmail {
			continue
		}
		if other.CourseCode == c.CourseCode {
			return service.NewUniqueViolation(service.ConstraintOwnerCode)
		}
		if other.Title == c.Title {
			return service.NewUniqueViolation(service.ConstraintOwnerTitle)
		}
	}

	c.ID = uuid.NewString()
	// Distinct timestamps so created-at ordering is deterministic.
	s.seq++
	c.CreatedAt = time.Now().Add(time.Duration(s.seq) * time.Millisecond)
	s.courses[c.ID] = *c
	return nil
}

func (s *CourseStore) Update(_ context.Context, c *model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.courses[c.ID]
	if !ok {
		return nil
	}
	for id, other := range s.courses {
		if id == c.ID || other.OwnerEmail != c.OwnerEmail {
			continue
		}
		if other.CourseCode == c.CourseCode {
			return service.NewUniqueViolation(service.ConstraintOwnerCode)
		}
		if other.Title == c.Title {
			return service.NewUniqueViolation(service.ConstraintOwnerTitle)
		}
	}

	c.OwnerEmail = existing.OwnerEmail
	c.CreatedAt = existing.CreatedAt
	s.courses[c.ID] = *c
	return nil
}

func (s *CourseStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.courses, id)
	return nil
}

func (s *CourseStore) ExistsCode(_ context.Context, ownerEmail, courseCode, excludeID string) (bool, error) {
	return s.exists(func(c model.Course) bool {
		return c.OwnerEmail == ownerEmail && c.CourseCode == courseCode
	}, excludeID), nil
}

func (s *CourseStore) ExistsTitle(_ context.Context, ownerEmail, title, excludeID string) (bool, error) {
	return s.exists(func(c model.Course) bool {
		return c.OwnerEmail == ownerEmail && c.Title == title
	}, excludeID), nil
}

func (s *CourseStore) ExistsCodeSlot(_ context.Context, ownerEmail, courseCode, days, timeRange, excludeID string) (bool, error) {
	return s.exists(func(c model.Course) bool {
		return c.OwnerEmail == ownerEmail && c.CourseCode == courseCode &&
			c.Days == days && c.Time == timeRange
	}, excludeID), nil
}

func (s *CourseStore) ExistsTitleSlot(_ context.Context, ownerEmail, title, days, timeRange, excludeID string) (bool, error) {
	return s.exists(func(c model.Course) bool {
		return c.OwnerEmail == ownerEmail && c.Title == title &&
			c.Days == days && c.Time == timeRange
	}, excludeID), nil
}

func (s *CourseStore) exists(match func(model.Course) bool, excludeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, c := range s.courses {
		if excludeID != "" && id == excludeID {
			continue
		}
		if match(c) {
			return true
		}
	}
	return false
}
