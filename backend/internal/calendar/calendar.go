package calendar

import (
	"fmt"
	"time"
)

// ── 日历/区间基础库 ──────────────────────────────────────────
//
// 职责：在闭区间日期范围上提供工作日计数与区间交集运算。
// 所有日期均为"裸日历日"（无时区、无时刻），序列化格式 YYYY-MM-DD。
//
// 设计决策：
//   - 休息日策略是可配置参数（历史上不同调用点对休息日的定义不一致，
//     这里统一为部署级配置，默认周六+周日）
//   - 重叠判定提供两个命名谓词：OverlapsInclusive（端点相接视为重叠，
//     用于同项目冲突检测）与 OverlapsStrict（端点相接不算重叠，
//     用于容忍首尾相接的预留查询）。两者服务于不同产品语义，不可合并。
// ─────────────────────────────────────────────────────────────

// DateLayout 裸日历日的序列化格式
const DateLayout = "2006-01-02"

// ── 休息日策略 ──

// RestPolicy 休息日策略：weekday → 是否休息
type RestPolicy struct {
	name string
	rest map[time.Weekday]bool
}

var (
	// RestSatSun 周六+周日休息（默认策略）
	RestSatSun = RestPolicy{
		name: "sat_sun",
		rest: map[time.Weekday]bool{time.Saturday: true, time.Sunday: true},
	}

	// RestFriSat 周五+周六休息（中东地区工作周）
	RestFriSat = RestPolicy{
		name: "fri_sat",
		rest: map[time.Weekday]bool{time.Friday: true, time.Saturday: true},
	}
)

// PolicyByName 按配置名称解析休息日策略
func PolicyByName(name string) (RestPolicy, error) {
	switch name {
	case "", RestSatSun.name:
		return RestSatSun, nil
	case RestFriSat.name:
		return RestFriSat, nil
	default:
		return RestPolicy{}, fmt.Errorf("未知的休息日策略 %q（可选: sat_sun, fri_sat）", name)
	}
}

// Name 返回策略的配置名称
func (p RestPolicy) Name() string { return p.name }

// IsRestDay 判断某天是否为休息日
func (p RestPolicy) IsRestDay(d time.Time) bool {
	return p.rest[d.Weekday()]
}

// ── 日期解析 ──

// ParseDate 解析 YYYY-MM-DD 为裸日历日（UTC 零点，仅作日期载体）
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("日期格式无效 %q（应为 YYYY-MM-DD）: %w", s, err)
	}
	return d, nil
}

// FormatDate 将日期格式化为 YYYY-MM-DD
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// ── 闭区间日期范围 ──

// DateRange 闭区间 [Start, End]，两端均含
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewRange 构造闭区间，要求 start <= end
func NewRange(start, end time.Time) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("区间结束日 %s 早于起始日 %s",
			FormatDate(end), FormatDate(start))
	}
	return DateRange{Start: start, End: end}, nil
}

// ParseRange 从 YYYY-MM-DD 字符串对构造闭区间
func ParseRange(startStr, endStr string) (DateRange, error) {
	start, err := ParseDate(startStr)
	if err != nil {
		return DateRange{}, err
	}
	end, err := ParseDate(endStr)
	if err != nil {
		return DateRange{}, err
	}
	return NewRange(start, end)
}

// Days 区间内日历天数（含两端）
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// WorkingDays 区间内非休息日天数（含两端）
func (r DateRange) WorkingDays(policy RestPolicy) int {
	count := 0
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		if !policy.IsRestDay(d) {
			count++
		}
	}
	return count
}

// Intersect 计算两区间交集；不相交时 ok=false
func (r DateRange) Intersect(other DateRange) (DateRange, bool) {
	start := maxDate(r.Start, other.Start)
	end := minDate(r.End, other.End)
	if start.After(end) {
		return DateRange{}, false
	}
	return DateRange{Start: start, End: end}, true
}

// OverlapsInclusive 闭区间重叠判定：端点相接也算重叠。
// 用于同项目预订冲突检测。
func (r DateRange) OverlapsInclusive(other DateRange) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

// OverlapsStrict 严格重叠判定：端点相接不算重叠。
// 用于预留查询，允许首尾相接的相邻安排。
func (r DateRange) OverlapsStrict(other DateRange) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

// MonthRange 某年某月对应的闭区间
func MonthRange(year int, month time.Month) DateRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return DateRange{Start: start, End: end}
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
