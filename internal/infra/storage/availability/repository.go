package availability

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/sernanic/DogSitter-ScheduleService/internal/domain"
	"github.com/sernanic/DogSitter-ScheduleService/pkg/dbmetrics"
	"github.com/sernanic/DogSitter-ScheduleService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с еженедельной доступностью ситтера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySitter загружает еженедельное расписание ситтера.
// Возвращает расписание со всеми семью днями недели, даже если
// в таблице нет ни одной строки для ситтера.
func (r *Repository) GetBySitter(ctx context.Context, sitterID int64) (domain.WeekAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"slot_id",
		"weekday",
		"start_time",
		"end_time",
	).
		From("sitter_weekly_slots").
		Where(squirrel.Eq{"sitter_id": sitterID}).
		OrderBy("weekday ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySitter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySitter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	week := domain.NewWeekAvailability()
	for rows.Next() {
		var (
			slot    domain.TimeSlot
			weekday string
		)
		if err := rows.Scan(&slot.ID, &weekday, &slot.Start, &slot.End); err != nil {
			return nil, fmt.Errorf("%w: GetBySitter - scan slot: %v", ErrScanRow, err)
		}

		day, err := domain.ParseWeekday(weekday)
		if err != nil {
			return nil, fmt.Errorf("%w: GetBySitter - parse weekday: %v", ErrScanRow, err)
		}
		week[day] = append(week[day], slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBySitter - rows error: %v", ErrScanRow, err)
	}

	for day := range week {
		domain.SortSlots(week[day])
	}

	return week, nil
}

// ReplaceForSitter целиком заменяет еженедельное расписание ситтера.
// Выполняет delete + insert, поэтому должен вызываться внутри транзакции
// (через txmanager), чтобы конкурентные сохранения не теряли данные.
func (r *Repository) ReplaceForSitter(ctx context.Context, sitterID int64, week domain.WeekAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// 1. Удаляем текущее расписание ситтера
	deleteQuery, deleteArgs, err := psqlbuilder.Delete("sitter_weekly_slots").
		Where(squirrel.Eq{"sitter_id": sitterID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForSitter - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceForSitter - execute delete: %v", ErrExecQuery, err)
	}

	// 2. Вставляем новое расписание одним запросом
	if week.TotalSlots() == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("sitter_weekly_slots").
		Columns("slot_id", "sitter_id", "weekday", "start_time", "end_time")

	for _, day := range domain.AllWeekdays {
		for _, slot := range week[day] {
			insertBuilder = insertBuilder.Values(slot.ID, sitterID, string(day), slot.Start, slot.End)
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
