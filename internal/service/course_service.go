package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jomadlcrz/class-schedule-backend/internal/model"
	"github.com/jomadlcrz/class-schedule-backend/internal/schedule"
)

// CourseStore is the persistence surface the course service needs. The
// PostgreSQL repository implements it; tests use the inmem package.
type CourseStore interface {
	ListByOwner(ctx context.Context, ownerEmail string) ([]model.Course, error)
	GetByID(ctx context.Context, id string) (*model.Course, error)
	Create(ctx context.Context, c *model.Course) error
	Update(ctx context.Context, c *model.Course) error
	Delete(ctx context.Context, id string) error
	ExistsCode(ctx context.Context, ownerEmail, courseCode, excludeID string) (bool, error)
	ExistsTitle(ctx context.Context, ownerEmail, title, excludeID string) (bool, error)
	ExistsCodeSlot(ctx context.Context, ownerEmail, courseCode, days, timeRange, excludeID string) (bool, error)
	ExistsTitleSlot(ctx context.Context, ownerEmail, title, days, timeRange, excludeID string) (bool, error)
}

// CourseService owns the per-owner CRUD contract: uniqueness and schedule
// conflict checks, owner assignment, and the list read cache.
type CourseService struct {
	store CourseStore
	cache ListCache
	log   zerolog.Logger
}

func NewCourseService(store CourseStore, cache ListCache, log zerolog.Logger) *CourseService {
	return &CourseService{
		store: store,
		cache: cache,
		log:   log.With().Str("component", "course_service").Logger(),
	}
}

// List returns all of the owner's courses, most recent first, consulting
// the short-TTL read cache before the store.
func (s *CourseService) List(ctx context.Context, ownerEmail string) ([]model.Course, error) {
	if courses, found := s.cache.Get(ctx, ownerEmail); found {
		return courses, nil
	}

	courses, err := s.store.ListByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	if courses == nil {
		courses = []model.Course{}
	}

	s.cache.Set(ctx, ownerEmail, courses)
	return courses, nil
}

// Create validates the draft against the owner's existing courses and
// persists it with a fresh id, the caller's email, and the current
// timestamp. Any ownerEmail in the draft is ignored.
func (s *CourseService) Create(ctx context.Context, ownerEmail string, draft model.CourseDraft) (*model.Course, error) {
	if err := schedule.ValidateRange(draft.Time); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	if err := s.checkConflicts(ctx, ownerEmail, draft, ""); err != nil {
		return nil, err
	}

	course := &model.Course{
		CourseCode: draft.CourseCode,
		Title:      draft.Title,
		Units:      draft.Units,
		Days:       draft.Days,
		Time:       draft.Time,
		Room:       draft.Room,
		Instructor: draft.Instructor,
		OwnerEmail: ownerEmail,
	}

	if err := s.store.Create(ctx, course); err != nil {
		// The pre-flight checks race with concurrent creates; the store's
		// unique constraints are the source of truth and turn the losing
		// write into the same conflict the check would have produced.
		if conflict := conflictFromConstraint(violatedConstraint(err)); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("create course: %w", err)
	}

	s.cache.Invalidate(ctx, ownerEmail)
	s.log.Info().Str("course_id", course.ID).Str("owner", ownerEmail).Msg("Course created")
	return course, nil
}

// Update overwrites all mutable fields of an owned course. The ownership
// check runs before any field validation.
func (s *CourseService) Update(ctx context.Context, ownerEmail, id string, draft model.CourseDraft) (*model.Course, error) {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if existing == nil {
		return nil, ErrCourseNotFound
	}
	if existing.OwnerEmail != ownerEmail {
		return nil, ErrNotOwner
	}

	if err := schedule.ValidateRange(draft.Time); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	if err := s.checkConflicts(ctx, ownerEmail, draft, id); err != nil {
		return nil, err
	}

	course := &model.Course{
		ID:         existing.ID,
		CourseCode: draft.CourseCode,
		Title:      draft.Title,
		Units:      draft.Units,
		Days:       draft.Days,
		Time:       draft.Time,
		Room:       draft.Room,
		Instructor: draft.Instructor,
		OwnerEmail: existing.OwnerEmail,
		CreatedAt:  existing.CreatedAt,
	}

	if err := s.store.Update(ctx, course); err != nil {
		if conflict := conflictFromConstraint(violatedConstraint(err)); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("update course: %w", err)
	}

	s.cache.Invalidate(ctx, ownerEmail)
	s.log.Info().Str("course_id", id).Str("owner", ownerEmail).Msg("Course updated")
	return course, nil
}

// Delete permanently removes an owned course.
func (s *CourseService) Delete(ctx context.Context, ownerEmail, id string) error {
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load course: %w", err)
	}
	if existing == nil {
		return ErrCourseNotFound
	}
	if existing.OwnerEmail != ownerEmail {
		return ErrNotOwner
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	s.cache.Invalidate(ctx, ownerEmail)
	s.log.Info().Str("course_id", id).Str("owner", ownerEmail).Msg("Course deleted")
	return nil
}

// checkConflicts runs the four uniqueness checks in fixed order,
// short-circuiting at the first match. excludeID leaves the record being
// updated out of every check.
//
// Checks 3 and 4 cannot fire while 1 and 2 enforce global per-owner
// uniqueness; they are kept, in order, because the slot-scoped messages
// suggest uniqueness was meant to be scoped by (days, time) eventually.
func (s *CourseService) checkConflicts(ctx context.Context, ownerEmail string, draft model.CourseDraft, excludeID string) error {
	exists, err := s.store.ExistsCode(ctx, ownerEmail, draft.CourseCode, excludeID)
	if err != nil {
		return fmt.Errorf("check course code: %w", err)
	}
	if exists {
		return &ConflictError{Message: MsgCodeExists}
	}

	exists, err = s.store.ExistsTitle(ctx, ownerEmail, draft.Title, excludeID)
	if err != nil {
		return fmt.Errorf("check title: %w", err)
	}
	if exists {
		return &ConflictError{Message: MsgTitleExists}
	}

	exists, err = s.store.ExistsCodeSlot(ctx, ownerEmail, draft.CourseCode, draft.Days, draft.Time, excludeID)
	if err != nil {
		return fmt.Errorf("check course code slot: %w", err)
	}
	if exists {
		return &ConflictError{Message: MsgCodeSlotExists}
	}

	exists, err = s.store.ExistsTitleSlot(ctx, ownerEmail, draft.Title, draft.Days, draft.Time, excludeID)
	if err != nil {
		return fmt.Errorf("check title slot: %w", err)
	}
	if exists {
		return &ConflictError{Message: MsgTitleSlotExists}
	}

	return nil
}
