package rateconfig

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
)

// DBExecutor переиспользуем интерфейс из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

var columns = []string{
	"id",
	"version_number",
	"status",
	"green_fees",
	"caddy_fees",
	"base_fees",
	"tax_config",
	"created_by",
	"approved_by",
	"activated_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий версионированных тарифных сеток.
// Цены хранятся в JSONB колонках.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория тарифных сеток
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую версию
func (r *Repository) Create(ctx context.Context, cfg *domain.RateConfig) (*domain.RateConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	fees, err := encodeFees(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("rate_configs").
		Columns(
			"version_number",
			"status",
			"green_fees",
			"caddy_fees",
			"base_fees",
			"tax_config",
			"created_by",
		).
		Values(
			cfg.VersionNumber,
			cfg.Status,
			fees.green,
			fees.caddy,
			fees.base,
			fees.tax,
			cfg.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&cfg.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

// UpdateFees заменяет цены версии (только для черновиков, проверяется в сервисе)
func (r *Repository) UpdateFees(ctx context.Context, cfg *domain.RateConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	fees, err := encodeFees(cfg)
	if err != nil {
		return fmt.Errorf("%w: UpdateFees - %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Update("rate_configs").
		Set("green_fees", fees.green).
		Set("caddy_fees", fees.caddy).
		Set("base_fees", fees.base).
		Set("tax_config", fees.tax).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": cfg.ID, "status": domain.RateDraft}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateFees - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateFees - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateFees - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// GetByID получает версию по ID. В транзакции строка блокируется.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RateConfig, error) {
	builder := psqlbuilder.Select(columns...).
		From("rate_configs").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.getOne(ctx, "GetByID", builder)
}

// GetActive получает активную версию
func (r *Repository) GetActive(ctx context.Context) (*domain.RateConfig, error) {
	builder := psqlbuilder.Select(columns...).
		From("rate_configs").
		Where(squirrel.Eq{"status": domain.RateActive})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.getOne(ctx, "GetActive", builder)
}

// List возвращает все версии, новые первыми
func (r *Repository) List(ctx context.Context) ([]*domain.RateConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("rate_configs").
		OrderBy("version_number DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.RateConfig, 0)
	for rows.Next() {
		cfg, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - %v", ErrScanRow, err)
		}
		configs = append(configs, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// NextVersion следующий номер версии
func (r *Repository) NextVersion(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(MAX(version_number), 0) + 1").
		From("rate_configs").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: NextVersion - build select query: %v", ErrBuildQuery, err)
	}

	var version int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&version); err != nil {
		return 0, fmt.Errorf("%w: NextVersion - scan: %v", ErrScanRow, err)
	}

	return version, nil
}

// Transition меняет статус только если текущий статус равен from (compare-and-swap).
// approved фиксирует согласующего, active - время активации.
func (r *Repository) Transition(ctx context.Context, id int64, from, to domain.RateConfigStatus, actor *int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("rate_configs").
		Set("status", to).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id, "status": from})

	switch to {
	case domain.RateApproved:
		builder = builder.Set("approved_by", actor)
	case domain.RateActive:
		builder = builder.Set("activated_at", at)
	case domain.RateDraft:
		builder = builder.Set("approved_by", nil)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Transition - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Transition - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Transition - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, builder squirrel.SelectBuilder) (*domain.RateConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	cfg, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRateConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - %v", ErrScanRow, op, err)
	}

	return cfg, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row scanner) (*domain.RateConfig, error) {
	var (
		cfg                     domain.RateConfig
		green, caddy, base, tax []byte
		approvedBy              sql.NullInt64
		activatedAt             sql.NullTime
		createdAt, updatedAt    sql.NullTime
	)

	err := row.Scan(
		&cfg.ID,
		&cfg.VersionNumber,
		&cfg.Status,
		&green,
		&caddy,
		&base,
		&tax,
		&cfg.CreatedBy,
		&approvedBy,
		&activatedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(green, &cfg.GreenFees); err != nil {
		return nil, fmt.Errorf("decode green_fees: %w", err)
	}
	if err := json.Unmarshal(caddy, &cfg.CaddyFees); err != nil {
		return nil, fmt.Errorf("decode caddy_fees: %w", err)
	}
	if err := json.Unmarshal(base, &cfg.BaseFees); err != nil {
		return nil, fmt.Errorf("decode base_fees: %w", err)
	}
	if err := json.Unmarshal(tax, &cfg.TaxConfig); err != nil {
		return nil, fmt.Errorf("decode tax_config: %w", err)
	}

	if approvedBy.Valid {
		cfg.ApprovedBy = &approvedBy.Int64
	}
	if activatedAt.Valid {
		cfg.ActivatedAt = &activatedAt.Time
	}
	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

type encodedFees struct {
	green, caddy, base, tax []byte
}

func encodeFees(cfg *domain.RateConfig) (*encodedFees, error) {
	green, err := json.Marshal(cfg.GreenFees)
	if err != nil {
		return nil, err
	}
	caddy, err := json.Marshal(cfg.CaddyFees)
	if err != nil {
		return nil, err
	}
	base, err := json.Marshal(cfg.BaseFees)
	if err != nil {
		return nil, err
	}
	tax, err := json.Marshal(cfg.TaxConfig)
	if err != nil {
		return nil, err
	}
	return &encodedFees{green: green, caddy: caddy, base: base, tax: tax}, nil
}
