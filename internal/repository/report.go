package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_response_system/internal/models"
	"github.com/shenikar/emergency_response_system/internal/service"
)

// queryer покрывает и пул, и транзакцию
type queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type ReportRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewReportRepository(db *pgxpool.Pool, redisClient *redis.Client) service.ReportRepository {
	return &ReportRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Create создает новую запись об отчете в бд
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (type, description, username, first_name, last_name, age, contact_number, latitude, longitude, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		report.Type,
		report.Description,
		report.Username,
		report.FirstName,
		report.LastName,
		report.Age,
		report.ContactNumber,
		report.Latitude,
		report.Longitude,
		report.Status,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetByID возвращает отчет по его UUID вместе с журналом действий
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	report, err := r.getReport(ctx, r.db, id, false)
	if err != nil {
		return nil, err
	}
	if err := r.loadActions(ctx, r.db, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ApplyTransition выполняет атомарное чтение-изменение-дозапись под
// блокировкой строки отчета (SELECT ... FOR UPDATE). Конкурентные переходы
// по одному id сериализуются: каждая дозапись журнала сохраняется, запись
// состояния и дозапись истории фиксируются одним коммитом.
func (r *ReportRepository) ApplyTransition(ctx context.Context, id uuid.UUID, apply func(*models.Report) (*models.ResponderAction, error)) (*models.Report, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transition transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	report, err := r.getReport(ctx, tx, id, true)
	if err != nil {
		return nil, err
	}
	if err := r.loadActions(ctx, tx, report); err != nil {
		return nil, err
	}

	action, err := apply(report)
	if err != nil {
		return nil, fmt.Errorf("failed to apply transition: %w", err)
	}

	updateQuery := `
		UPDATE reports SET
			status = $1,
			cancellation_reason = $2,
			cancellation_time = $3,
			resolved_at = $4,
			updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at;
	`
	err = tx.QueryRow(ctx, updateQuery,
		report.Status,
		nullIfEmpty(report.CancellationReason),
		report.CancellationTime,
		report.ResolvedAt,
		report.ID,
	).Scan(&report.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to persist transition: %w", err)
	}

	if action != nil {
		insertQuery := `
			INSERT INTO responder_actions (report_id, responder_id, full_name, action, created_at)
			VALUES ($1, $2, $3, $4, $5) RETURNING id;
		`
		err = tx.QueryRow(ctx, insertQuery,
			action.ReportID,
			action.ResponderID,
			action.FullName,
			action.Action,
			action.Timestamp,
		).Scan(&action.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to append responder action: %w", err)
		}
		report.Responders = append(report.Responders, *action)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transition: %w", err)
	}
	return report, nil
}

// ListReports возвращает список отчетов с пагинацией, новые первыми
func (r *ReportRepository) ListReports(ctx context.Context, page, pageSize int) ([]*models.Report, error) {
	// рассчитываем смещение
	offset := (page - 1) * pageSize

	query := reportColumns + `
		FROM reports
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*models.Report, 0)
	byID := make(map[uuid.UUID]*models.Report)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		report := &models.Report{}
		if err := scanReport(rows, report); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		reports = append(reports, report)
		byID[report.ID] = report
		ids = append(ids, report.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}

	if len(ids) == 0 {
		return reports, nil
	}

	// Дотягиваем журналы действий одним запросом на всю страницу
	actionRows, err := r.db.Query(ctx, actionColumns+`
		FROM responder_actions
		WHERE report_id = ANY($1)
		ORDER BY id;
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list responder actions: %w", err)
	}
	defer actionRows.Close()

	for actionRows.Next() {
		action := models.ResponderAction{}
		if err := scanAction(actionRows, &action); err != nil {
			return nil, fmt.Errorf("failed to scan responder action row: %w", err)
		}
		if report, ok := byID[action.ReportID]; ok {
			report.Responders = append(report.Responders, action)
		}
	}
	if err := actionRows.Err(); err != nil {
		return nil, fmt.Errorf("error action list iteration: %w", err)
	}
	return reports, nil
}

// GetReporterStats возвращает количество уникальных заявителей за окно времени
func (r *ReportRepository) GetReporterStats(ctx context.Context, minutes int) (int, error) {
	query := `
		SELECT COUNT(DISTINCT username)
		FROM reports
		WHERE created_at >= NOW() - ($1 * INTERVAL '1 minute');
	`
	var count int
	err := r.db.QueryRow(ctx, query, minutes).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get reporter stats: %w", err)
	}
	return count, nil
}

// GetReportFromCache пытается получить отчет из Redis
func (r *ReportRepository) GetReportFromCache(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	key := fmt.Sprintf("report:%s", id.String())
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report from cache: %w", err)
	}

	report := &models.Report{}
	if err := json.Unmarshal(val, report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report from cache: %w", err)
	}
	return report, nil
}

// SetReportCache сохраняет отчет в Redis
func (r *ReportRepository) SetReportCache(ctx context.Context, report *models.Report) error {
	key := fmt.Sprintf("report:%s", report.ID.String())
	val, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report for cache: %w", err)
	}
	// Устанавливаем срок жизни кэша, например, 5 минут
	if err := r.redisClient.Set(ctx, key, val, 5*time.Minute).Err(); err != nil {
		return fmt.Errorf("failed to set report in cache: %w", err)
	}
	return nil
}

// InvalidateReportCache удаляет отчет из Redis кэша
func (r *ReportRepository) InvalidateReportCache(ctx context.Context, id uuid.UUID) error {
	key := fmt.Sprintf("report:%s", id.String())
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate report cache: %w", err)
	}
	return nil
}

const reportColumns = `
		SELECT
			id,
			type,
			description,
			username,
			first_name,
			last_name,
			age,
			contact_number,
			latitude,
			longitude,
			status,
			cancellation_reason,
			cancellation_time,
			resolved_at,
			created_at,
			updated_at
`

const actionColumns = `
		SELECT
			id,
			report_id,
			responder_id,
			full_name,
			action,
			created_at
`

func (r *ReportRepository) getReport(ctx context.Context, q queryer, id uuid.UUID, forUpdate bool) (*models.Report, error) {
	query := reportColumns + `
		FROM reports
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}
	query += ";"

	report := &models.Report{}
	row := q.QueryRow(ctx, query, id)
	if err := scanReport(row, report); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("report with id %s: %w", id, models.ErrReportNotFound)
		}
		return nil, fmt.Errorf("failed to get report by id: %w", err)
	}
	return report, nil
}

func (r *ReportRepository) loadActions(ctx context.Context, q queryer, report *models.Report) error {
	rows, err := q.Query(ctx, actionColumns+`
		FROM responder_actions
		WHERE report_id = $1
		ORDER BY id;
	`, report.ID)
	if err != nil {
		return fmt.Errorf("failed to load responder actions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		action := models.ResponderAction{}
		if err := scanAction(rows, &action); err != nil {
			return fmt.Errorf("failed to scan responder action row: %w", err)
		}
		report.Responders = append(report.Responders, action)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error action iteration: %w", err)
	}
	return nil
}

func scanReport(row pgx.Row, report *models.Report) error {
	var description, contactNumber, cancellationReason *string
	err := row.Scan(
		&report.ID,
		&report.Type,
		&description,
		&report.Username,
		&report.FirstName,
		&report.LastName,
		&report.Age,
		&contactNumber,
		&report.Latitude,
		&report.Longitude,
		&report.Status,
		&cancellationReason,
		&report.CancellationTime,
		&report.ResolvedAt,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if description != nil {
		report.Description = *description
	}
	if contactNumber != nil {
		report.ContactNumber = *contactNumber
	}
	if cancellationReason != nil {
		report.CancellationReason = *cancellationReason
	}
	return nil
}

// nullIfEmpty хранит пустую строку как NULL: причина отмены присутствует
// только у отмененных отчетов
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func scanAction(row pgx.Row, action *models.ResponderAction) error {
	return row.Scan(
		&action.ID,
		&action.ReportID,
		&action.ResponderID,
		&action.FullName,
		&action.Action,
		&action.Timestamp,
	)
}
