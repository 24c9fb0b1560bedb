package waitlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TeeTimeService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// DBExecutor переиспользуем интерфейс из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// уникальный индекс активных записей (user_id, booking_date, peak_window_id)
const pqUniqueViolation = "23505"

var columns = []string{
	"id",
	"user_id",
	"booking_date",
	"desired_start",
	"desired_end",
	"player_count",
	"peak_window_id",
	"status",
	"lock_expiry",
	"offered_start",
	"offered_holes",
	"freed_booking_id",
	"notification_sent",
	"needs_follow_up",
	"created_at",
	"updated_at",
}

// Repository репозиторий листа ожидания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create ставит запись в очередь
func (r *Repository) Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("waitlist_entries").
		Columns(
			"user_id",
			"booking_date",
			"desired_start",
			"desired_end",
			"player_count",
			"peak_window_id",
			"status",
		).
		Values(
			entry.UserID,
			entry.Date,
			entry.DesiredStart,
			entry.DesiredEnd,
			entry.PlayerCount,
			entry.PeakWindowID,
			entry.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt, &updatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, ErrActiveEntryExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return entry, nil
}

// GetByID получает запись по ID. В транзакции строка блокируется.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - %v", ErrScanRow, err)
	}

	return entry, nil
}

// ListByDate возвращает записи даты в порядке очереди. Пустой statuses - все статусы.
func (r *Repository) ListByDate(ctx context.Context, date time.Time, statuses ...domain.WaitlistStatus) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"booking_date": date}).
		OrderBy("created_at ASC", "id ASC")

	if len(statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"status": statusStrings(statuses)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEntries(rows, "ListByDate")
}

// ExistsActive true, если у пользователя уже есть запись в очереди или живое предложение
// на это окно этой даты
func (r *Repository) ExistsActive(ctx context.Context, userID int64, date time.Time, peakWindowID string, now time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("waitlist_entries").
		Where(squirrel.Eq{
			"user_id":        userID,
			"booking_date":   date,
			"peak_window_id": peakWindowID,
		}).
		Where(squirrel.Or{
			squirrel.Eq{"status": string(domain.WaitlistQueued)},
			squirrel.And{
				squirrel.Eq{"status": string(domain.WaitlistNotified)},
				squirrel.Gt{"lock_expiry": now},
			},
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActive - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActive - %v", ErrScanRow, err)
	}

	return true, nil
}

// NextCandidate находит первую по очереди запись даты, чей диапазон содержит start.
// Строка блокируется, занятые другими транзакциями строки пропускаются (SKIP LOCKED).
// Вызывается только внутри транзакции.
func (r *Repository) NextCandidate(ctx context.Context, date time.Time, start types.TimeString, skipIDs []int64) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("waitlist_entries").
		Where(squirrel.Eq{
			"booking_date": date,
			"status":       string(domain.WaitlistQueued),
		}).
		Where(squirrel.LtOrEq{"desired_start": start}).
		Where(squirrel.GtOrEq{"desired_end": start}).
		OrderBy("created_at ASC", "id ASC").
		Limit(1).
		Suffix("FOR UPDATE SKIP LOCKED")

	if len(skipIDs) > 0 {
		builder = builder.Where(squirrel.NotEq{"id": skipIDs})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: NextCandidate - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNoCandidate
	}
	if err != nil {
		return nil, fmt.Errorf("%w: NextCandidate - %v", ErrScanRow, err)
	}

	return entry, nil
}

// MarkNotified переводит запись queued -> notified (compare-and-swap) и фиксирует предложение.
// Ноль затронутых строк - запись уже забрал другой процесс.
func (r *Repository) MarkNotified(ctx context.Context, id int64, offer domain.WaitlistOffer, now time.Time) error {
	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", domain.WaitlistNotified).
		Set("lock_expiry", offer.LockExpiry).
		Set("offered_start", offer.OfferedStart).
		Set("offered_holes", int(offer.OfferedHoles)).
		Set("freed_booking_id", offer.FreedBookingID).
		Set("notification_sent", false).
		Set("needs_follow_up", false).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": string(domain.WaitlistQueued)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkNotified - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCAS(ctx, "MarkNotified", query, args)
}

// MarkConfirmed переводит notified -> confirmed, только пока удержание не истекло
func (r *Repository) MarkConfirmed(ctx context.Context, id int64, now time.Time) error {
	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", domain.WaitlistConfirmed).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": string(domain.WaitlistNotified)}).
		Where(squirrel.Gt{"lock_expiry": now}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkConfirmed - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCAS(ctx, "MarkConfirmed", query, args)
}

// Requeue возвращает notified запись в очередь. created_at не меняется,
// поэтому запись сохраняет свое место в FIFO.
func (r *Repository) Requeue(ctx context.Context, id int64, now time.Time) error {
	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", domain.WaitlistQueued).
		Set("lock_expiry", nil).
		Set("offered_start", nil).
		Set("offered_holes", nil).
		Set("freed_booking_id", nil).
		Set("notification_sent", false).
		Set("needs_follow_up", false).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id, "status": string(domain.WaitlistNotified)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Requeue - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCAS(ctx, "Requeue", query, args)
}

// Cancel отменяет запись в статусе queued или notified
func (r *Repository) Cancel(ctx context.Context, id int64, now time.Time) error {
	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", domain.WaitlistCancelled).
		Set("updated_at", now).
		Where(squirrel.Eq{
			"id":     id,
			"status": statusStrings(domain.ActiveWaitlistStatuses),
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCAS(ctx, "Cancel", query, args)
}

// ExpireOverdue переводит все notified записи с истекшим lock_expiry в expired
// и возвращает их. Повторный вызов с тем же now ничего не меняет.
func (r *Repository) ExpireOverdue(ctx context.Context, now time.Time) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", domain.WaitlistExpired).
		Set("updated_at", now).
		Where(squirrel.Eq{"status": string(domain.WaitlistNotified)}).
		Where(squirrel.LtOrEq{"lock_expiry": now}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ExpireOverdue - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ExpireOverdue - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEntries(rows, "ExpireOverdue")
}

// RecordDelivery фиксирует результат доставки предложения.
// Недоставленное предложение помечается для ручной обработки.
func (r *Repository) RecordDelivery(ctx context.Context, id int64, sent bool, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("notification_sent", sent).
		Set("needs_follow_up", !sent).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RecordDelivery - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RecordDelivery - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RecordDelivery - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func (r *Repository) execCAS(ctx context.Context, op, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

func statusStrings(statuses []domain.WaitlistStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntries(rows *sql.Rows, op string) ([]*domain.WaitlistEntry, error) {
	entries := make([]*domain.WaitlistEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}
	return entries, nil
}

func scanEntry(row scanner) (*domain.WaitlistEntry, error) {
	var (
		entry                domain.WaitlistEntry
		lockExpiry           sql.NullTime
		offeredStart         sql.NullString
		offeredHoles         sql.NullInt64
		freedBookingID       sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Date,
		&entry.DesiredStart,
		&entry.DesiredEnd,
		&entry.PlayerCount,
		&entry.PeakWindowID,
		&entry.Status,
		&lockExpiry,
		&offeredStart,
		&offeredHoles,
		&freedBookingID,
		&entry.NotificationSent,
		&entry.NeedsFollowUp,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lockExpiry.Valid {
		entry.LockExpiry = &lockExpiry.Time
	}
	if offeredStart.Valid {
		start, err := types.NewTimeStringFromString(offeredStart.String)
		if err != nil {
			return nil, fmt.Errorf("offered_start: %w", err)
		}
		entry.OfferedStart = &start
	}
	if offeredHoles.Valid {
		holes := domain.Holes(offeredHoles.Int64)
		entry.OfferedHoles = &holes
	}
	if freedBookingID.Valid {
		entry.FreedBookingID = &freedBookingID.Int64
	}
	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}
