package offer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/stayfinder/SF-BookingService/internal/domain"
	"github.com/stayfinder/SF-BookingService/pkg/dbmetrics"
	"github.com/stayfinder/SF-BookingService/pkg/psqlbuilder"
)

const uniqueViolationCode = "23505"

// Переиспользуем интерфейс исполнителя запросов из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

var offerColumns = []string{
	"id",
	"code",
	"offer_type",
	"discount_value",
	"minimum_amount",
	"maximum_discount",
	"valid_from",
	"valid_to",
	"usage_limit",
	"used_count",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с офферами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория офферов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый оффер
func (r *Repository) Create(ctx context.Context, o *domain.Offer) (*domain.Offer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("offers").
		Columns(
			"code",
			"offer_type",
			"discount_value",
			"minimum_amount",
			"maximum_discount",
			"valid_from",
			"valid_to",
			"usage_limit",
			"is_active",
		).
		Values(
			o.Code,
			o.Type,
			o.DiscountValue,
			o.MinimumAmount,
			o.MaxDiscount,
			o.ValidFrom,
			o.ValidTo,
			o.UsageLimit,
			o.IsActive,
		).
		Suffix("RETURNING id, used_count, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&o.ID,
		&o.UsedCount,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return o, nil
}

// GetByID получает оффер по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByCode получает оффер по коду.
// Валидность (активность, окно действия, лимит) оценивает вызывающая сторона.
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Offer, error) {
	return r.getOne(ctx, squirrel.Eq{"code": code}, "GetByCode")
}

// Update обновляет параметры оффера
func (r *Repository) Update(ctx context.Context, o *domain.Offer) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("offers").
		Set("discount_value", o.DiscountValue).
		Set("minimum_amount", o.MinimumAmount).
		Set("maximum_discount", o.MaxDiscount).
		Set("valid_from", o.ValidFrom).
		Set("valid_to", o.ValidTo).
		Set("usage_limit", o.UsageLimit).
		Set("is_active", o.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": o.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOfferNotFound
	}

	return nil
}

// Deactivate выключает оффер, не удаляя его
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("offers").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOfferNotFound
	}

	return nil
}

// IncrementUsage атомарно увеличивает счётчик использований.
// Условие used_count < usage_limit в самом UPDATE защищает лимит от гонок:
// второй конкурентный инкремент на исчерпанном оффере не пройдёт.
func (r *Repository) IncrementUsage(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("offers").
		Set("used_count", squirrel.Expr("used_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("(usage_limit IS NULL OR used_count < usage_limit)")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Либо оффер не существует, либо лимит исчерпан
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrUsageLimitReached
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string) (*domain.Offer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(offerColumns...).
		From("offers").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var o domain.Offer
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&o.ID,
		&o.Code,
		&o.Type,
		&o.DiscountValue,
		&o.MinimumAmount,
		&o.MaxDiscount,
		&o.ValidFrom,
		&o.ValidTo,
		&o.UsageLimit,
		&o.UsedCount,
		&o.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOfferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan offer: %v", ErrScanRow, op, err)
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	return &o, nil
}
