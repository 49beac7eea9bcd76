package calendar

import (
	"testing"
	"time"
)

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("解析日期失败: %v", err)
	}
	return d
}

func mustRange(t *testing.T, start, end string) DateRange {
	t.Helper()
	r, err := ParseRange(start, end)
	if err != nil {
		t.Fatalf("构造区间失败: %v", err)
	}
	return r
}

// ── 休息日策略 ──

func TestPolicyByName(t *testing.T) {
	p, err := PolicyByName("")
	if err != nil || p.Name() != "sat_sun" {
		t.Errorf("空名称应返回默认策略 sat_sun，实际=%s err=%v", p.Name(), err)
	}

	p, err = PolicyByName("fri_sat")
	if err != nil || p.Name() != "fri_sat" {
		t.Errorf("期望 fri_sat，实际=%s err=%v", p.Name(), err)
	}

	if _, err := PolicyByName("mon_tue"); err == nil {
		t.Error("未知策略名应报错")
	}
}

// ── WorkingDays ──

func TestWorkingDays_SingleDay(t *testing.T) {
	// 2025-06-02 是周一
	monday := mustParse(t, "2025-06-02")
	r := DateRange{Start: monday, End: monday}
	if got := r.WorkingDays(RestSatSun); got != 1 {
		t.Errorf("单个工作日应计 1，实际=%d", got)
	}

	// 2025-06-07 是周六
	saturday := mustParse(t, "2025-06-07")
	r = DateRange{Start: saturday, End: saturday}
	if got := r.WorkingDays(RestSatSun); got != 0 {
		t.Errorf("单个休息日应计 0，实际=%d", got)
	}
}

func TestWorkingDays_FullWeek(t *testing.T) {
	// 2025-06-02（周一）~ 2025-06-08（周日）
	r := mustRange(t, "2025-06-02", "2025-06-08")

	if got := r.WorkingDays(RestSatSun); got != 5 {
		t.Errorf("sat_sun 策略下整周应计 5 个工作日，实际=%d", got)
	}
	if got := r.WorkingDays(RestFriSat); got != 5 {
		t.Errorf("fri_sat 策略下整周应计 5 个工作日，实际=%d", got)
	}
}

func TestWorkingDays_PolicyDiffers(t *testing.T) {
	// 2025-06-06 是周五：sat_sun 下是工作日，fri_sat 下是休息日
	friday := mustParse(t, "2025-06-06")
	r := DateRange{Start: friday, End: friday}

	if got := r.WorkingDays(RestSatSun); got != 1 {
		t.Errorf("周五在 sat_sun 策略下应计 1，实际=%d", got)
	}
	if got := r.WorkingDays(RestFriSat); got != 0 {
		t.Errorf("周五在 fri_sat 策略下应计 0，实际=%d", got)
	}
}

func TestWorkingDays_WeekendOnly(t *testing.T) {
	// 2025-06-07（周六）~ 2025-06-08（周日）
	r := mustRange(t, "2025-06-07", "2025-06-08")
	if got := r.WorkingDays(RestSatSun); got != 0 {
		t.Errorf("纯周末区间应计 0，实际=%d", got)
	}
}

// ── Intersect ──

func TestIntersect_Overlapping(t *testing.T) {
	a := mustRange(t, "2025-06-01", "2025-06-10")
	b := mustRange(t, "2025-06-05", "2025-06-15")

	got, ok := a.Intersect(b)
	if !ok {
		t.Fatal("区间应相交")
	}
	if FormatDate(got.Start) != "2025-06-05" || FormatDate(got.End) != "2025-06-10" {
		t.Errorf("交集应为 [06-05, 06-10]，实际=[%s, %s]",
			FormatDate(got.Start), FormatDate(got.End))
	}
}

func TestIntersect_TouchingEndpoints(t *testing.T) {
	a := mustRange(t, "2025-06-01", "2025-06-05")
	b := mustRange(t, "2025-06-05", "2025-06-10")

	got, ok := a.Intersect(b)
	if !ok {
		t.Fatal("端点相接的闭区间交集非空")
	}
	if FormatDate(got.Start) != "2025-06-05" || FormatDate(got.End) != "2025-06-05" {
		t.Errorf("交集应为单日 06-05，实际=[%s, %s]",
			FormatDate(got.Start), FormatDate(got.End))
	}
}

func TestIntersect_Disjoint(t *testing.T) {
	a := mustRange(t, "2025-06-01", "2025-06-05")
	b := mustRange(t, "2025-06-06", "2025-06-10")

	if _, ok := a.Intersect(b); ok {
		t.Error("不相交区间应返回 ok=false")
	}
}

// ── 重叠谓词 ──

func TestOverlapsInclusive_TouchingCounts(t *testing.T) {
	a := mustRange(t, "2025-06-01", "2025-06-05")
	b := mustRange(t, "2025-06-05", "2025-06-10")

	if !a.OverlapsInclusive(b) {
		t.Error("端点相接在 inclusive 判定下应视为重叠")
	}
}

func TestOverlapsStrict_TouchingTolerated(t *testing.T) {
	a := mustRange(t, "2025-06-01", "2025-06-05")
	b := mustRange(t, "2025-06-05", "2025-06-10")

	if a.OverlapsStrict(b) {
		t.Error("端点相接在 strict 判定下不应视为重叠")
	}

	c := mustRange(t, "2025-06-04", "2025-06-10")
	if !a.OverlapsStrict(c) {
		t.Error("真正重叠的区间在 strict 判定下应视为重叠")
	}
}

// ── 其他 ──

func TestNewRange_Invalid(t *testing.T) {
	start := mustParse(t, "2025-06-10")
	end := mustParse(t, "2025-06-01")
	if _, err := NewRange(start, end); err == nil {
		t.Error("end < start 应报错")
	}
}

func TestMonthRange(t *testing.T) {
	r := MonthRange(2025, time.February)
	if FormatDate(r.Start) != "2025-02-01" || FormatDate(r.End) != "2025-02-28" {
		t.Errorf("2025-02 月区间错误: [%s, %s]", FormatDate(r.Start), FormatDate(r.End))
	}

	r = MonthRange(2024, time.February)
	if FormatDate(r.End) != "2024-02-29" {
		t.Errorf("闰年二月末应为 02-29，实际=%s", FormatDate(r.End))
	}
}

func TestDays(t *testing.T) {
	r := mustRange(t, "2025-06-01", "2025-06-01")
	if r.Days() != 1 {
		t.Errorf("单日区间 Days 应为 1，实际=%d", r.Days())
	}
	r = mustRange(t, "2025-06-01", "2025-06-10")
	if r.Days() != 10 {
		t.Errorf("十日区间 Days 应为 10，实际=%d", r.Days())
	}
}
