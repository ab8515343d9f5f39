package boarding

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
	"github.com/sernanic/DogSitter-ScheduleService/pkg/dbmetrics"
	"github.com/sernanic/DogSitter-ScheduleService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с датами передержки ситтера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория дат передержки
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySitter загружает все выбранные даты передержки ситтера
func (r *Repository) GetBySitter(ctx context.Context, sitterID int64) (domain.BoardingDateSet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("date").
		From("sitter_boarding_dates").
		Where(squirrel.Eq{"sitter_id": sitterID}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySitter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySitter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	set := domain.NewBoardingDateSet()
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("%w: GetBySitter - scan date: %v", ErrScanRow, err)
		}
		set[domain.DateString(date)] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBySitter - rows error: %v", ErrScanRow, err)
	}

	return set, nil
}

// ReplaceForSitter целиком заменяет набор дат передержки ситтера.
// Выполняет delete + insert, поэтому должен вызываться внутри транзакции.
func (r *Repository) ReplaceForSitter(ctx context.Context, sitterID int64, set domain.BoardingDateSet) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// 1. Удаляем текущие даты ситтера
	deleteQuery, deleteArgs, err := psqlbuilder.Delete("sitter_boarding_dates").
		Where(squirrel.Eq{"sitter_id": sitterID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForSitter - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceForSitter - execute delete: %v", ErrExecQuery, err)
	}

	if len(set) == 0 {
		return nil
	}

	// 2. Вставляем новый набор одним запросом
	insertBuilder := psqlbuilder.Insert("sitter_boarding_dates").
		Columns("sitter_id", "date")

	for _, date := range set.Dates() {
		insertBuilder = insertBuilder.Values(sitterID, string(date))
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForSitter - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceForSitter - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
