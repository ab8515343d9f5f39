package unavailability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
	"github.com/sernanic/DogSitter-ScheduleService/pkg/dbmetrics"
	"github.com/sernanic/DogSitter-ScheduleService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с недоступностью ситтера по датам.
//
// Каждая дата хранится набором строк:
//   - строка-маркер с full_day = true и пустыми колонками слота, если день
//     закрыт целиком;
//   - по строке на каждый частичный интервал (full_day = false).
//
// Маркер и интервалы сосуществуют: интервалы сохраняются "за" маркером,
// чтобы повторное переключение полного дня возвращало их обратно.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория недоступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySitter загружает календарь недоступности ситтера
func (r *Repository) GetBySitter(ctx context.Context, sitterID int64) (domain.UnavailabilityCalendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"date",
		"full_day",
		"slot_id",
		"start_time",
		"end_time",
	).
		From("sitter_date_unavailability").
		Where(squirrel.Eq{"sitter_id": sitterID}).
		OrderBy("date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySitter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySitter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	cal := domain.NewUnavailabilityCalendar()
	for rows.Next() {
		var (
			date    string
			fullDay bool
			slotID  sql.NullString
			start   sql.NullString
			end     sql.NullString
		)
		if err := rows.Scan(&date, &fullDay, &slotID, &start, &end); err != nil {
			return nil, fmt.Errorf("%w: GetBySitter - scan row: %v", ErrScanRow, err)
		}

		key := domain.DateString(date)
		entry := cal[key]

		if fullDay {
			entry.Kind = domain.UnavailabilityFullDay
		} else {
			if entry.Kind == "" {
				entry.Kind = domain.UnavailabilityPartial
			}
			slot := domain.TimeSlot{ID: slotID.String}
			if err := slot.Start.Scan(start.String); err != nil {
				return nil, fmt.Errorf("%w: GetBySitter - scan start_time: %v", ErrScanRow, err)
			}
			if err := slot.End.Scan(end.String); err != nil {
				return nil, fmt.Errorf("%w: GetBySitter - scan end_time: %v", ErrScanRow, err)
			}
			entry.Slots = append(entry.Slots, slot)
		}

		cal[key] = entry
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBySitter - rows error: %v", ErrScanRow, err)
	}

	for date, entry := range cal {
		domain.SortSlots(entry.Slots)
		cal[date] = entry
	}

	return cal, nil
}

// HasFullDayUnavailability проверяет, закрыта ли дата целиком.
// Используется при переключении дат передержки без загрузки всего календаря.
func (r *Repository) HasFullDayUnavailability(ctx context.Context, sitterID int64, date domain.DateString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("sitter_date_unavailability").
		Where(squirrel.Eq{
			"sitter_id": sitterID,
			"date":      string(date),
			"full_day":  true,
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasFullDayUnavailability - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasFullDayUnavailability - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// ReplaceForSitter целиком заменяет календарь недоступности ситтера.
// Выполняет delete + insert, поэтому должен вызываться внутри транзакции.
func (r *Repository) ReplaceForSitter(ctx context.Context, sitterID int64, cal domain.UnavailabilityCalendar) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// 1. Удаляем текущий календарь ситтера
	deleteQuery, deleteArgs, err := psqlbuilder.Delete("sitter_date_unavailability").
		Where(squirrel.Eq{"sitter_id": sitterID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForSitter - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceForSitter - execute delete: %v", ErrExecQuery, err)
	}

	if len(cal) == 0 {
		return nil
	}

	// 2. Вставляем маркеры полного дня и частичные интервалы
	insertBuilder := psqlbuilder.Insert("sitter_date_unavailability").
		Columns("sitter_id", "date", "full_day", "slot_id", "start_time", "end_time")

	for date, entry := range cal {
		if entry.IsFullDay() {
			insertBuilder = insertBuilder.Values(sitterID, string(date), true, nil, nil, nil)
		}
		for _, slot := range entry.Slots {
			insertBuilder = insertBuilder.Values(sitterID, string(date), false, slot.ID, slot.Start, slot.End)
		}
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
