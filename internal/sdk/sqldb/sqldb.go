// Package sqldb provides database operations for the coaching service.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/joho/godotenv/autoload"

	"github.com/fitcoach/coaching-service/internal/sdk/models"
)

// postgres error codes
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	uniqueViolation     = "23505"
	undefinedTable      = "42P01"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
	notNullViolation    = "23502"
)

var (
	ErrDBNotFound          = sql.ErrNoRows
	ErrDBDuplicatedEntry   = errors.New("duplicated entry")
	ErrUndefinedTable      = errors.New("undefined table")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrCheckViolation      = errors.New("check constraint violation")
	ErrNotNullViolation    = errors.New("not null violation")
)

// Service represents a service that interacts with the database.
type Service interface {
	// Health returns a map of health status information.
	Health() map[string]string

	// Close terminates the database connection.
	Close() error

	// Account operations
	CreateAccount(ctx context.Context, account models.NewAccount) (models.Account, error)
	GetAccountByID(ctx context.Context, accountID int64) (models.Account, error)
	GetAccountByPhone(ctx context.Context, phone string) (models.Account, error)
	UpdateAccountProfile(ctx context.Context, accountID int64, profile models.AccountProfile) (models.Account, error)

	// Directory operations
	ListStudentsByTrainer(ctx context.Context, trainerID int64) ([]models.Account, error)
	GetStudentByNickname(ctx context.Context, trainerID int64, nickname string) (models.Account, error)
	AssignTrainer(ctx context.Context, studentID, trainerID int64) error

	// Task operations
	CreateTask(ctx context.Context, task models.NewTask) (models.Task, error)
	ListTasksForAccount(ctx context.Context, accountID int64) ([]models.Task, error)
	ListTasksForStudent(ctx context.Context, trainerID, studentID int64) ([]models.Task, error)

	// Summary report operations
	CreateReport(ctx context.Context, report models.NewSummaryReport) (models.SummaryReport, error)
	ListReports(ctx context.Context) ([]models.SummaryReport, error)
}

type service struct {
	db *sql.DB
}

var (
	database = os.Getenv("COACHING_DB_DATABASE")
	password = os.Getenv("COACHING_DB_PASSWORD")
	username = os.Getenv("COACHING_DB_USERNAME")
	port     = os.Getenv("COACHING_DB_PORT")
	host     = os.Getenv("COACHING_DB_HOST")
	schema   = os.Getenv("COACHING_DB_SCHEMA")
)

func New() Service {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s", username, password, host, port, database, schema)
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		log.Fatal(err)
	}
	return &service{db: db}
}

// Health checks the database connection by pinging it and reports
// connection-pool statistics.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := s.db.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()

	if dbStats.OpenConnections > 40 {
		stats["message"] = "The database is experiencing heavy load."
	}
	if dbStats.WaitCount > 1000 {
		stats["message"] = "The database has a high number of wait events, indicating potential bottlenecks."
	}

	return stats
}

func (s *service) Close() error {
	log.Printf("Disconnected from database: %s", database)
	return s.db.Close()
}

// ---------------------------------------------
// Account operations
// ---------------------------------------------

const accountColumns = `
	id,
	phone_number,
	password_hash,
	created_at,
	is_active,
	is_trainer,
	trainer_id,
	surname,
	name,
	patronymic,
	age,
	weight,
	height,
	gender,
	nickname,
	updated_at
`

func scanAccount(row interface{ Scan(...any) error }) (models.Account, error) {
	var (
		account    models.Account
		trainerID  sql.NullInt64
		surname    sql.NullString
		name       sql.NullString
		patronymic sql.NullString
		age        sql.NullInt64
		weight     sql.NullFloat64
		height     sql.NullFloat64
		gender     sql.NullString
		nickname   sql.NullString
	)

	err := row.Scan(
		&account.ID,
		&account.Phone,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.IsActive,
		&account.IsTrainer,
		&trainerID,
		&surname,
		&name,
		&patronymic,
		&age,
		&weight,
		&height,
		&gender,
		&nickname,
		&account.UpdatedAt,
	)
	if err != nil {
		return models.Account{}, err
	}

	account.TrainerID = Int64Ptr(trainerID)
	account.Surname = StringPtr(surname)
	account.Name = StringPtr(name)
	account.Patronymic = StringPtr(patronymic)
	account.Age = Int64Ptr(age)
	account.Weight = Float64Ptr(weight)
	account.Height = Float64Ptr(height)
	account.Gender = StringPtr(gender)
	account.Nickname = StringPtr(nickname)

	return account, nil
}

// CreateAccount inserts a new account. The canonical phone number carries a
// unique constraint, so a concurrent registration with the same phone loses
// with ErrDBDuplicatedEntry.
func (s *service) CreateAccount(ctx context.Context, na models.NewAccount) (models.Account, error) {
	const query = `
		INSERT INTO accounts (phone_number, password_hash, is_active, is_trainer)
		VALUES ($1, $2, TRUE, $3)
		RETURNING ` + accountColumns

	account, err := scanAccount(s.db.QueryRowContext(ctx, query,
		na.Phone,
		na.PasswordHash,
		na.IsTrainer,
	))
	if err != nil {
		if isPgError(err, uniqueViolation) {
			return models.Account{}, ErrDBDuplicatedEntry
		}
		return models.Account{}, fmt.Errorf("creating account: %w", err)
	}

	return account, nil
}

// GetAccountByID retrieves an account by its id.
func (s *service) GetAccountByID(ctx context.Context, accountID int64) (models.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(s.db.QueryRowContext(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrDBNotFound
		}
		return models.Account{}, fmt.Errorf("selecting account: %w", err)
	}

	return account, nil
}

// GetAccountByPhone retrieves an account by its canonical phone number.
func (s *service) GetAccountByPhone(ctx context.Context, phone string) (models.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE phone_number = $1`

	account, err := scanAccount(s.db.QueryRowContext(ctx, query, phone))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrDBNotFound
		}
		return models.Account{}, fmt.Errorf("selecting account by phone: %w", err)
	}

	return account, nil
}

// UpdateAccountProfile sets the optional profile fields. Nil fields keep
// their current value.
func (s *service) UpdateAccountProfile(ctx context.Context, accountID int64, p models.AccountProfile) (models.Account, error) {
	const query = `
		UPDATE accounts
		SET surname    = COALESCE($2, surname),
		    name       = COALESCE($3, name),
		    patronymic = COALESCE($4, patronymic),
		    age        = COALESCE($5, age),
		    weight     = COALESCE($6, weight),
		    height     = COALESCE($7, height),
		    gender     = COALESCE($8, gender),
		    nickname   = COALESCE($9, nickname),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING ` + accountColumns

	account, err := scanAccount(s.db.QueryRowContext(ctx, query,
		accountID,
		NullString(p.Surname),
		NullString(p.Name),
		NullString(p.Patronymic),
		NullInt64(p.Age),
		NullFloat64(p.Weight),
		NullFloat64(p.Height),
		NullString(p.Gender),
		NullString(p.Nickname),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrDBNotFound
		}
		if isPgError(err, uniqueViolation) {
			return models.Account{}, ErrDBDuplicatedEntry
		}
		return models.Account{}, fmt.Errorf("updating account profile: %w", err)
	}

	return account, nil
}

// ---------------------------------------------
// Directory operations
// ---------------------------------------------

// ListStudentsByTrainer retrieves the student accounts assigned to a trainer.
func (s *service) ListStudentsByTrainer(ctx context.Context, trainerID int64) ([]models.Account, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE trainer_id = $1 AND is_trainer = FALSE
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, trainerID)
	if err != nil {
		return nil, fmt.Errorf("listing students: %w", err)
	}
	defer rows.Close()

	var students []models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning student: %w", err)
		}
		students = append(students, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating students: %w", err)
	}

	return students, nil
}

// GetStudentByNickname retrieves a student by nickname, scoped to the given
// trainer. The trainer_id match keeps one trainer from reading another
// trainer's student by guessing a nickname.
func (s *service) GetStudentByNickname(ctx context.Context, trainerID int64, nickname string) (models.Account, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE nickname = $1 AND trainer_id = $2 AND is_trainer = FALSE
	`

	account, err := scanAccount(s.db.QueryRowContext(ctx, query, nickname, trainerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrDBNotFound
		}
		return models.Account{}, fmt.Errorf("selecting student by nickname: %w", err)
	}

	return account, nil
}

// AssignTrainer points a student's trainer_id at the given trainer.
// The assignment is unconditional, see the task-creation handler.
func (s *service) AssignTrainer(ctx context.Context, studentID, trainerID int64) error {
	const query = `
		UPDATE accounts
		SET trainer_id = $2,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, studentID, trainerID)
	if err != nil {
		return fmt.Errorf("assigning trainer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrDBNotFound
	}

	return nil
}

// ---------------------------------------------
// Task operations
// ---------------------------------------------

const taskColumns = `
	id,
	trainer_id,
	student_id,
	title,
	description,
	type,
	duration_minutes,
	intensity,
	date_time,
	created_at
`

func scanTask(row interface{ Scan(...any) error }) (models.Task, error) {
	var task models.Task
	err := row.Scan(
		&task.ID,
		&task.TrainerID,
		&task.StudentID,
		&task.Title,
		&task.Description,
		&task.Type,
		&task.DurationMinutes,
		&task.Intensity,
		&task.DateTime,
		&task.CreatedAt,
	)
	return task, err
}

// CreateTask inserts a new workout task.
func (s *service) CreateTask(ctx context.Context, nt models.NewTask) (models.Task, error) {
	const query = `
		INSERT INTO tasks (trainer_id, student_id, title, description, type, duration_minutes, intensity, date_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + taskColumns

	task, err := scanTask(s.db.QueryRowContext(ctx, query,
		nt.TrainerID,
		nt.StudentID,
		nt.Title,
		nt.Description,
		nt.Type,
		nt.DurationMinutes,
		nt.Intensity,
		nt.DateTime,
	))
	if err != nil {
		if isPgError(err, foreignKeyViolation) {
			return models.Task{}, ErrForeignKeyViolation
		}
		return models.Task{}, fmt.Errorf("creating task: %w", err)
	}

	return task, nil
}

// ListTasksForAccount retrieves tasks where the account participates as
// either trainer or student.
func (s *service) ListTasksForAccount(ctx context.Context, accountID int64) ([]models.Task, error) {
	const query = `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE trainer_id = $1 OR student_id = $1
		ORDER BY date_time
	`

	return s.queryTasks(ctx, query, accountID)
}

// ListTasksForStudent retrieves the tasks a trainer assigned to one student.
func (s *service) ListTasksForStudent(ctx context.Context, trainerID, studentID int64) ([]models.Task, error) {
	const query = `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE trainer_id = $1 AND student_id = $2
		ORDER BY date_time
	`

	return s.queryTasks(ctx, query, trainerID, studentID)
}

func (s *service) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	return tasks, nil
}

// ---------------------------------------------
// Summary report operations
// ---------------------------------------------

// CreateReport inserts a new summary report.
func (s *service) CreateReport(ctx context.Context, nr models.NewSummaryReport) (models.SummaryReport, error) {
	const query = `
		INSERT INTO summary_reports (user_id, difficulty, self_health, comment, is_skip, skip_reason, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, difficulty, self_health, comment, is_skip, skip_reason, date, created_at
	`

	var (
		report     models.SummaryReport
		comment    sql.NullString
		skipReason sql.NullString
	)

	err := s.db.QueryRowContext(ctx, query,
		nr.UserID,
		nr.Difficulty,
		nr.SelfHealth,
		NullString(nr.Comment),
		nr.IsSkip,
		NullString(nr.SkipReason),
		nr.Date,
	).Scan(
		&report.ID,
		&report.UserID,
		&report.Difficulty,
		&report.SelfHealth,
		&comment,
		&report.IsSkip,
		&skipReason,
		&report.Date,
		&report.CreatedAt,
	)
	if err != nil {
		if isPgError(err, foreignKeyViolation) {
			return models.SummaryReport{}, ErrForeignKeyViolation
		}
		return models.SummaryReport{}, fmt.Errorf("creating report: %w", err)
	}

	report.Comment = StringPtr(comment)
	report.SkipReason = StringPtr(skipReason)

	return report, nil
}

// ListReports retrieves all summary reports.
func (s *service) ListReports(ctx context.Context) ([]models.SummaryReport, error) {
	const query = `
		SELECT id, user_id, difficulty, self_health, comment, is_skip, skip_reason, date, created_at
		FROM summary_reports
		ORDER BY date DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var reports []models.SummaryReport
	for rows.Next() {
		var (
			report     models.SummaryReport
			comment    sql.NullString
			skipReason sql.NullString
		)
		err := rows.Scan(
			&report.ID,
			&report.UserID,
			&report.Difficulty,
			&report.SelfHealth,
			&comment,
			&report.IsSkip,
			&skipReason,
			&report.Date,
			&report.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		report.Comment = StringPtr(comment)
		report.SkipReason = StringPtr(skipReason)
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}

	return reports, nil
}

// ---------------------------------------------
// Helpers
// ---------------------------------------------

// isPgError checks if the error is a PostgreSQL error with the given code.
func isPgError(err error, code string) bool {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == code
	}
	return false
}

// NullString creates a sql.NullString from a string pointer.
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// NullInt64 creates a sql.NullInt64 from an int64 pointer.
func NullInt64(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

// NullFloat64 creates a sql.NullFloat64 from a float64 pointer.
func NullFloat64(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// StringPtr returns a pointer to a string from sql.NullString.
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// Int64Ptr returns a pointer to an int64 from sql.NullInt64.
func Int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	return &ni.Int64
}

// Float64Ptr returns a pointer to a float64 from sql.NullFloat64.
func Float64Ptr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	return &nf.Float64
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDBNotFound)
}

// IsDuplicateEntry checks if the error is a duplicate entry error.
func IsDuplicateEntry(err error) bool {
	return errors.Is(err, ErrDBDuplicatedEntry)
}
