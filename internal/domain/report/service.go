package report

import "context"

type ReportService interface {
	Monthly(ctx context.Context, req MonthlyReportRequest) (File, error)
	Daily(ctx context.Context, req DailyReportRequest) (File, error)
	LOPStatement(ctx context.Context, req LOPStatementRequest) (File, error)
}
