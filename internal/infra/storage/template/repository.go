package template

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TeeTimeService/internal/domain"
	"github.com/m04kA/SMC-TeeTimeService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TeeTimeService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TeeTimeService/pkg/types"
)

// DBExecutor переиспользуем интерфейс из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// globalID глобальный шаблон хранится единственной строкой
const globalID = 1

var overrideColumns = []string{
	"override_date",
	"status",
	"is_holiday",
	"start_time",
	"end_time",
	"interval_minutes",
	"turn_duration_minutes",
	"peak_windows",
	"overflow",
	"note",
	"updated_at",
}

// Repository репозиторий шаблона работы поля и переопределений по датам.
// Пиковые окна и overflow хранятся в JSONB.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetGlobal получает глобальный шаблон
func (r *Repository) GetGlobal(ctx context.Context) (*domain.OperatingTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"start_time",
		"end_time",
		"interval_minutes",
		"turn_duration_minutes",
		"peak_windows",
		"overflow",
		"updated_at",
	).
		From("operating_template").
		Where(squirrel.Eq{"id": globalID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetGlobal - build select query: %v", ErrBuildQuery, err)
	}

	var (
		tpl       domain.OperatingTemplate
		windows   []byte
		overflow  []byte
		updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&tpl.StartTime,
		&tpl.EndTime,
		&tpl.IntervalMinutes,
		&tpl.TurnDurationMinutes,
		&windows,
		&overflow,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetGlobal - scan template: %v", ErrScanRow, err)
	}

	if tpl.PeakWindows, err = decodeWindows(windows); err != nil {
		return nil, fmt.Errorf("%w: GetGlobal - %v", ErrEncode, err)
	}
	if tpl.PeakWindows == nil {
		tpl.PeakWindows = []domain.PeakWindow{}
	}
	if tpl.Overflow, err = decodeOverflow(overflow); err != nil {
		return nil, fmt.Errorf("%w: GetGlobal - %v", ErrEncode, err)
	}
	tpl.UpdatedAt = updatedAt.Time

	return &tpl, nil
}

// SaveGlobal создает или заменяет глобальный шаблон
func (r *Repository) SaveGlobal(ctx context.Context, tpl *domain.OperatingTemplate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	windows, err := json.Marshal(nonNilWindows(tpl.PeakWindows))
	if err != nil {
		return fmt.Errorf("%w: SaveGlobal - %v", ErrEncode, err)
	}
	overflow, err := encodeOverflow(tpl.Overflow)
	if err != nil {
		return fmt.Errorf("%w: SaveGlobal - %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("operating_template").
		Columns(
			"id",
			"start_time",
			"end_time",
			"interval_minutes",
			"turn_duration_minutes",
			"peak_windows",
			"overflow",
			"updated_at",
		).
		Values(
			globalID,
			tpl.StartTime,
			tpl.EndTime,
			tpl.IntervalMinutes,
			tpl.TurnDurationMinutes,
			string(windows),
			jsonArg(overflow),
			tpl.UpdatedAt,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			interval_minutes = EXCLUDED.interval_minutes,
			turn_duration_minutes = EXCLUDED.turn_duration_minutes,
			peak_windows = EXCLUDED.peak_windows,
			overflow = EXCLUDED.overflow,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveGlobal - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveGlobal - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetOverride получает переопределение для даты
func (r *Repository) GetOverride(ctx context.Context, date time.Time) (*domain.CalendarOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("calendar_overrides").
		Where(squirrel.Eq{"override_date": date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - build select query: %v", ErrBuildQuery, err)
	}

	override, err := scanOverride(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - %v", ErrScanRow, err)
	}

	return override, nil
}

// ListOverrides возвращает переопределения в диапазоне дат [from, to]
func (r *Repository) ListOverrides(ctx context.Context, from, to time.Time) ([]*domain.CalendarOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("calendar_overrides").
		Where(squirrel.GtOrEq{"override_date": from}).
		Where(squirrel.LtOrEq{"override_date": to}).
		OrderBy("override_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverrides - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.CalendarOverride, 0)
	for rows.Next() {
		override, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOverrides - %v", ErrScanRow, err)
		}
		overrides = append(overrides, override)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOverrides - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// UpsertOverride создает или заменяет переопределение даты
func (r *Repository) UpsertOverride(ctx context.Context, o *domain.CalendarOverride) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var windows []byte
	if o.PeakWindows != nil {
		encoded, err := json.Marshal(o.PeakWindows)
		if err != nil {
			return fmt.Errorf("%w: UpsertOverride - %v", ErrEncode, err)
		}
		windows = encoded
	}
	overflow, err := encodeOverflow(o.Overflow)
	if err != nil {
		return fmt.Errorf("%w: UpsertOverride - %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("calendar_overrides").
		Columns(overrideColumns...).
		Values(
			o.Date,
			o.Status,
			o.IsHoliday,
			o.StartTime,
			o.EndTime,
			o.IntervalMinutes,
			o.TurnDurationMinutes,
			jsonArg(windows),
			jsonArg(overflow),
			o.Note,
			o.UpdatedAt,
		).
		Suffix(`ON CONFLICT (override_date) DO UPDATE SET
			status = EXCLUDED.status,
			is_holiday = EXCLUDED.is_holiday,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			interval_minutes = EXCLUDED.interval_minutes,
			turn_duration_minutes = EXCLUDED.turn_duration_minutes,
			peak_windows = EXCLUDED.peak_windows,
			overflow = EXCLUDED.overflow,
			note = EXCLUDED.note,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertOverride - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertOverride - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteOverride удаляет переопределение, дата возвращается к глобальному шаблону
func (r *Repository) DeleteOverride(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("calendar_overrides").
		Where(squirrel.Eq{"override_date": date}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOverride(row scanner) (*domain.CalendarOverride, error) {
	var (
		o                  domain.CalendarOverride
		startTime, endTime sql.NullString
		interval, turn     sql.NullInt64
		windows, overflow  []byte
		note               sql.NullString
		isHoliday          sql.NullBool
		updatedAt          sql.NullTime
	)

	err := row.Scan(
		&o.Date,
		&o.Status,
		&isHoliday,
		&startTime,
		&endTime,
		&interval,
		&turn,
		&windows,
		&overflow,
		&note,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if isHoliday.Valid {
		o.IsHoliday = &isHoliday.Bool
	}
	if o.StartTime, err = nullTime(startTime); err != nil {
		return nil, fmt.Errorf("start_time: %w", err)
	}
	if o.EndTime, err = nullTime(endTime); err != nil {
		return nil, fmt.Errorf("end_time: %w", err)
	}
	if interval.Valid {
		v := int(interval.Int64)
		o.IntervalMinutes = &v
	}
	if turn.Valid {
		v := int(turn.Int64)
		o.TurnDurationMinutes = &v
	}
	if o.PeakWindows, err = decodeWindows(windows); err != nil {
		return nil, err
	}
	if o.Overflow, err = decodeOverflow(overflow); err != nil {
		return nil, err
	}
	if note.Valid {
		o.Note = &note.String
	}
	o.UpdatedAt = updatedAt.Time

	return &o, nil
}

func nullTime(s sql.NullString) (*types.TimeString, error) {
	if !s.Valid {
		return nil, nil
	}
	ts, err := types.NewTimeStringFromString(s.String)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// decodeWindows NULL -> nil (наследовать), '[]' -> пустой слайс
func decodeWindows(raw []byte) ([]domain.PeakWindow, error) {
	if raw == nil {
		return nil, nil
	}
	windows := []domain.PeakWindow{}
	if err := json.Unmarshal(raw, &windows); err != nil {
		return nil, fmt.Errorf("decode peak_windows: %w", err)
	}
	return windows, nil
}

func decodeOverflow(raw []byte) (*domain.OverflowWindow, error) {
	if raw == nil {
		return nil, nil
	}
	var overflow domain.OverflowWindow
	if err := json.Unmarshal(raw, &overflow); err != nil {
		return nil, fmt.Errorf("decode overflow: %w", err)
	}
	return &overflow, nil
}

func encodeOverflow(o *domain.OverflowWindow) ([]byte, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal(o)
}

// jsonArg пустое значение уходит в БД как NULL
func jsonArg(raw []byte) interface{} {
	if raw == nil {
		return nil
	}
	return string(raw)
}

func nonNilWindows(w []domain.PeakWindow) []domain.PeakWindow {
	if w == nil {
		return []domain.PeakWindow{}
	}
	return w
}
