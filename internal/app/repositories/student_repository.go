package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/collegesocial/internal/app/models"
	"github.com/yigit/collegesocial/internal/db"
	"github.com/yigit/collegesocial/internal/pkg/dberrors"
	"github.com/yigit/collegesocial/internal/pkg/logger"
)

const (
	constraintERN   = "students_ern_number_key"
	constraintEmail = "students_email_key"
)

var studentColumns = []string{
	"id", "ern_number", "name", "email", "branch", "batch_year", "section",
	"mobile_number", "password", "first_login", "COALESCE(interests, '{}'::jsonb)",
	"profile_pic_url", "profile_pic_public_id", "created_at", "updated_at",
}

// RosterFields are the columns a roster import owns.
type RosterFields struct {
	Name         string
	Email        string
	Branch       string
	BatchYear    int
	Section      string
	MobileNumber *string
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository on a pool or a transaction.
func NewStudentRepository(conn db.DBTX) *StudentRepository {
	return &StudentRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	var interests []byte
	err := row.Scan(
		&s.ID, &s.ERNNumber, &s.Name, &s.Email, &s.Branch, &s.BatchYear, &s.Section,
		&s.MobileNumber, &s.Password, &s.FirstLogin, &interests,
		&s.ProfilePicURL, &s.ProfilePicPublicID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Interests = models.Interests{}
	if len(interests) > 0 {
		if err := json.Unmarshal(interests, &s.Interests); err != nil {
			return nil, fmt.Errorf("failed to decode interests of student %d: %w", s.ID, err)
		}
	}
	return &s, nil
}

func (r *StudentRepository) getOne(ctx context.Context, where squirrel.Sqlizer, logField string, logValue interface{}) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrStudentNotFound
		}
		logger.Error().Err(err).Interface(logField, logValue).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// GetByID retrieves a student by id
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "studentID", id)
}

// GetByEmail retrieves a student by email, case-insensitively.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Expr("LOWER(email) = LOWER(?)", strings.TrimSpace(email)), "email", email)
}

// GetByERN retrieves a student by enrollment number.
func (r *StudentRepository) GetByERN(ctx context.Context, ern string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"ern_number": ern}, "ern", ern)
}

// GetAuthorSummaries resolves a batch of ids in one query. Unknown ids are absent from the map.
func (r *StudentRepository) GetAuthorSummaries(ctx context.Context, ids []int64) (map[int64]models.AuthorSummary, error) {
	summaries := make(map[int64]models.AuthorSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	sql, args, err := r.sb.Select("id", "name", "profile_pic_url").
		From("students").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build author summaries query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying author summaries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.AuthorSummary
		if err := rows.Scan(&a.ID, &a.Name, &a.AvatarURL); err != nil {
			return nil, fmt.Errorf("error scanning author summary: %w", err)
		}
		summaries[a.ID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author summaries: %w", err)
	}
	return summaries, nil
}

// Create inserts a new student and fills its id and timestamps.
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	interests, err := json.Marshal(nonNilInterests(s.Interests))
	if err != nil {
		return fmt.Errorf("failed to encode interests: %w", err)
	}

	sql, args, err := r.sb.Insert("students").
		Columns("ern_number", "name", "email", "branch", "batch_year", "section",
			"mobile_number", "password", "first_login", "interests").
		Values(s.ERNNumber, s.Name, s.Email, s.Branch, s.BatchYear, s.Section,
			s.MobileNumber, s.Password, s.FirstLogin, squirrel.Expr("?::jsonb", string(interests))).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if e := duplicateError(err); e != nil {
			logger.Warn().Str("ern", s.ERNNumber).Str("email", s.Email).Msg("Attempted to create student with duplicate key")
			return e
		}
		logger.Error().Err(err).Str("ern", s.ERNNumber).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// UpdateRosterFields overwrites the roster-owned columns of a student. Credentials are untouched.
func (r *StudentRepository) UpdateRosterFields(ctx context.Context, id int64, f RosterFields) error {
	return r.update(ctx, id, map[string]interface{}{
		"name":          f.Name,
		"email":         f.Email,
		"branch":        f.Branch,
		"batch_year":    f.BatchYear,
		"section":       f.Section,
		"mobile_number": f.MobileNumber,
	})
}

// UpdatePassword stores a new hash and sets the first-login flag.
func (r *StudentRepository) UpdatePassword(ctx context.Context, id int64, hash string, firstLogin bool) error {
	return r.update(ctx, id, map[string]interface{}{
		"password":    hash,
		"first_login": firstLogin,
	})
}

// UpdateProfilePicture replaces the picture URL and its object store id together.
func (r *StudentRepository) UpdateProfilePicture(ctx context.Context, id int64, url, publicID *string) error {
	return r.update(ctx, id, map[string]interface{}{
		"profile_pic_url":       url,
		"profile_pic_public_id": publicID,
	})
}

// UpdateMobileNumber sets or clears the mobile number.
func (r *StudentRepository) UpdateMobileNumber(ctx context.Context, id int64, mobile *string) error {
	return r.update(ctx, id, map[string]interface{}{"mobile_number": mobile})
}

// UpdateInterests replaces the interests document.
func (r *StudentRepository) UpdateInterests(ctx context.Context, id int64, interests models.Interests) error {
	encoded, err := json.Marshal(nonNilInterests(interests))
	if err != nil {
		return fmt.Errorf("failed to encode interests: %w", err)
	}
	return r.update(ctx, id, map[string]interface{}{"interests": squirrel.Expr("?::jsonb", string(encoded))})
}

func (r *StudentRepository) update(ctx context.Context, id int64, set map[string]interface{}) error {
	set["updated_at"] = squirrel.Expr("NOW()")
	sql, args, err := r.sb.Update("students").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if e := duplicateError(err); e != nil {
			return e
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// Search matches name substrings and ERN prefixes, excluding the caller.
func (r *StudentRepository) Search(ctx context.Context, query string, excludeID int64, limit uint64) ([]models.Student, error) {
	q := strings.TrimSpace(query)
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.NotEq{"id": excludeID}).
		Where(squirrel.Or{
			squirrel.ILike{"name": "%" + q + "%"},
			squirrel.ILike{"ern_number": q + "%"},
		}).
		OrderBy("name ASC", "id ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build search students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error searching students: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}
	return students, nil
}

// CountExisting returns how many of ids exist.
func (r *StudentRepository) CountExisting(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	sql, args, err := r.sb.Select("COUNT(*)").
		From("students").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var n int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return n, nil
}

func duplicateError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, constraintERN):
		return fmt.Errorf("%w: %v", ErrERNExists, err)
	case dberrors.IsDuplicateConstraintError(err, constraintEmail):
		return fmt.Errorf("%w: %v", ErrEmailExists, err)
	}
	return nil
}

func nonNilInterests(in models.Interests) models.Interests {
	if in == nil {
		return models.Interests{}
	}
	return in
}
