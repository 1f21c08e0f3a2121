package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/stayfinder/SF-BookingService/internal/domain"
	"github.com/stayfinder/SF-BookingService/pkg/dbmetrics"
	"github.com/stayfinder/SF-BookingService/pkg/psqlbuilder"
)

const (
	uniqueViolationCode    = "23505"
	exclusionViolationCode = "23P01"

	createSavepoint = "create_reservation"
)

var reservationColumns = []string{
	"id",
	"booking_reference",
	"property_id",
	"user_id",
	"check_in",
	"check_out",
	"guests",
	"status",
	"nights",
	"base_total",
	"cleaning_fee",
	"security_deposit",
	"discount_amount",
	"grand_total",
	"offer_id",
	"idempotency_key",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
//
// Нарушение exclusion constraint (пересечение дат на объекте) возвращается
// как ErrDateConflict, коллизия booking_reference - как ErrDuplicateReference:
// вызывающая сторона перегенерирует номер и повторяет вставку. Внутри
// транзакции вставка обёрнута в savepoint: Postgres после ошибки constraint
// прерывает транзакцию (25P02), и без отката к savepoint повторная вставка
// в той же транзакции невозможна.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	inTx := dbmetrics.IsInTransaction(ctx)

	if inTx {
		if _, err := executor.ExecContext(ctx, "SAVEPOINT "+createSavepoint); err != nil {
			return nil, fmt.Errorf("%w: Create - set savepoint: %v", ErrExecQuery, err)
		}
	}

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"booking_reference",
			"property_id",
			"user_id",
			"check_in",
			"check_out",
			"guests",
			"status",
			"nights",
			"base_total",
			"cleaning_fee",
			"security_deposit",
			"discount_amount",
			"grand_total",
			"offer_id",
			"idempotency_key",
		).
		Values(
			res.BookingReference,
			res.PropertyID,
			res.UserID,
			res.Interval.CheckIn,
			res.Interval.CheckOut,
			res.Guests,
			res.Status,
			res.Nights,
			res.BaseTotal,
			res.CleaningFee,
			res.SecurityDeposit,
			res.DiscountAmount,
			res.GrandTotal,
			res.OfferID,
			res.IdempotencyKey,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if inTx {
			if _, rbErr := executor.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+createSavepoint); rbErr != nil {
				return nil, fmt.Errorf("%w: Create - rollback to savepoint: %v", ErrExecQuery, rbErr)
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", mapInsertError(err), err)
	}

	if inTx {
		if _, err := executor.ExecContext(ctx, "RELEASE SAVEPOINT "+createSavepoint); err != nil {
			return nil, fmt.Errorf("%w: Create - release savepoint: %v", ErrExecQuery, err)
		}
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByReference получает бронирование по клиентскому номеру
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Reservation, error) {
	return r.getOne(ctx, squirrel.Eq{"booking_reference": reference}, "GetByReference")
}

// GetByIdempotencyKey получает бронирование по idempotency key.
// Используется для идемпотентного повтора создания бронирования.
func (r *Repository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Reservation, error) {
	return r.getOne(ctx, squirrel.Eq{"idempotency_key": key}, "GetByIdempotencyKey")
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("check_in DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetByPropertyWithFilter получает бронирования объекта с гибкой фильтрацией.
// StartDate/EndDate ограничивают выборку бронированиями, пересекающими период
// (полуинтервальная семантика: check_in < EndDate AND check_out > StartDate).
//
// Внутри транзакции выборка блокирует строки (FOR UPDATE) - так usecase
// создания бронирования исключает гонку проверка-затем-вставка.
func (r *Repository) GetByPropertyWithFilter(ctx context.Context, filter domain.PropertyReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"property_id": filter.PropertyID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"check_out": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"check_in": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	selectBuilder = selectBuilder.OrderBy("check_in ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPropertyWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPropertyWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// ConfirmPending переводит бронирование pending -> confirmed.
// Переход условный (WHERE status = 'pending'): из двух конкурентных
// подтверждений пройдёт только одно, второе получит ErrNotPending.
func (r *Repository) ConfirmPending(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusConfirmed).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ConfirmPending - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ConfirmPending - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ConfirmPending - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotPending
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
	}

	return res, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.BookingReference,
		&res.PropertyID,
		&res.UserID,
		&res.Interval.CheckIn,
		&res.Interval.CheckOut,
		&res.Guests,
		&res.Status,
		&res.Nights,
		&res.BaseTotal,
		&res.CleaningFee,
		&res.SecurityDeposit,
		&res.DiscountAmount,
		&res.GrandTotal,
		&res.OfferID,
		&res.IdempotencyKey,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// mapInsertError различает нарушения constraint'ов при вставке
func mapInsertError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return ErrExecQuery
	}

	switch string(pqErr.Code) {
	case exclusionViolationCode:
		return ErrDateConflict
	case uniqueViolationCode:
		if strings.Contains(pqErr.Constraint, "idempotency_key") {
			return ErrDuplicateIdempotencyKey
		}
		if strings.Contains(pqErr.Constraint, "booking_reference") {
			return ErrDuplicateReference
		}
		return ErrExecQuery
	default:
		return ErrExecQuery
	}
}
