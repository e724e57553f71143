package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jomadlcrz/class-schedule-backend/internal/model"
)

const courseColumns = `id, course_code, title, units, days, time_range, room, instructor, owner_email, created_at`

type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// ListByOwner returns all of an owner's courses, most recent first.
func (r *CourseRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE owner_email = $1 ORDER BY created_at DESC`,
		ownerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := scanCourse(rows, &c); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// GetByID returns the course with the given id, or nil when absent.
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var c model.Course
	row := r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id::text = $1`, id)
	if err := scanCourse(row, &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a course, assigning its id and creation timestamp.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	c.ID = uuid.NewString()
	return r.pool.QueryRow(ctx,
		`INSERT INTO courses (id, course_code, title, units, days, time_range, room, instructor, owner_email)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`,
		c.ID, c.CourseCode, c.Title, c.Units, c.Days, c.Time, c.Room, c.Instructor, c.OwnerEmail,
	).Scan(&c.CreatedAt)
}

// Update overwrites all mutable fields. The owner and creation timestamp
// never change.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE courses
		 SET course_code = $1, title = $2, units = $3, days = $4, time_range = $5, room = $6, instructor = $7
		 WHERE id::text = $8`,
		c.CourseCode, c.Title, c.Units, c.Days, c.Time, c.Room, c.Instructor, c.ID)
	return err
}

// Delete permanently removes a course.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id::text = $1`, id)
	return err
}

// ExistsCode reports whether another course of this owner uses courseCode.
// excludeID is the id left out of the check ("" for none), used when
// updating a record against its siblings.
func (r *CourseRepository) ExistsCode(ctx context.Context, ownerEmail, courseCode, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM courses
		   WHERE owner_email = $1 AND course_code = $2 AND ($3 = '' OR id::text <> $3)
		 )`,
		ownerEmail, courseCode, excludeID).Scan(&exists)
	return exists, err
}

// ExistsTitle reports whether another course of this owner uses title.
func (r *CourseRepository) ExistsTitle(ctx context.Context, ownerEmail, title, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM courses
		   WHERE owner_email = $1 AND title = $2 AND ($3 = '' OR id::text <> $3)
		 )`,
		ownerEmail, title, excludeID).Scan(&exists)
	return exists, err
}

// ExistsCodeSlot reports whether another course of this owner shares
// courseCode, days and time simultaneously.
func (r *CourseRepository) ExistsCodeSlot(ctx context.Context, ownerEmail, courseCode, days, timeRange, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM courses
		   WHERE owner_email = $1 AND course_code = $2 AND days = $3 AND time_range = $4
		     AND ($5 = '' OR id::text <> $5)
		 )`,
		ownerEmail, courseCode, days, timeRange, excludeID).Scan(&exists)
	return exists, err
}

// ExistsTitleSlot reports whether another course of this owner shares
// title, days and time simultaneously.
func (r *CourseRepository) ExistsTitleSlot(ctx context.Context, ownerEmail, title, days, timeRange, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM courses
		   WHERE owner_email = $1 AND title = $2 AND days = $3 AND time_range = $4
		     AND ($5 = '' OR id::text <> $5)
		 )`,
		ownerEmail, title, days, timeRange, excludeID).Scan(&exists)
	return exists, err
}

func scanCourse(row pgx.Row, c *model.Course) error {
	return row.Scan(
		&c.ID, &c.CourseCode, &c.Title, &c.Units, &c.Days, &c.Time,
		&c.Room, &c.Instructor, &c.OwnerEmail, &c.CreatedAt,
	)
}
