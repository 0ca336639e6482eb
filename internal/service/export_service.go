package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"dormdesk/backend/internal/dto"
	"dormdesk/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoComplaints = errors.New("无符合条件的投诉可导出")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// exportMaxRows 单次导出的行数上限
const exportMaxRows = 10000

// ExportService 导出业务接口
//
// 设计说明：
//   - 过滤语义与管理员列表完全一致（状态/类别精确，关键词模糊）
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportComplaints 导出过滤后的投诉列表为 Excel
	ExportComplaints(ctx context.Context, req *dto.ComplaintListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportComplaints(ctx context.Context, req *dto.ComplaintListRequest) (*bytes.Buffer, string, error) {
	filters := &repository.ComplaintListFilters{
		Status:   req.Status,
		Category: req.Category,
		Keyword:  req.Keyword,
	}

	// 导出不分页，一次取全量（设上限防御超大表）
	complaints, _, err := s.repo.Complaint.List(ctx, filters, 0, exportMaxRows)
	if err != nil {
		s.logger.Error("查询待导出投诉失败", zap.Error(err))
		return nil, "", err
	}
	if len(complaints) == 0 {
		return nil, "", ErrExportNoComplaints
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "投诉列表"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	f.SetColWidth(sheetName, "A", "A", 38)
	f.SetColWidth(sheetName, "B", "B", 28)
	f.SetColWidth(sheetName, "C", "H", 16)
	f.SetColWidth(sheetName, "I", "I", 28)

	// 表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"编号", "主题", "类别", "状态", "房间", "提交人", "登录名", "提交时间", "管理员回复"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, fmt.Sprintf("%s1", col), h)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", lastCol), headerStyle)

	// 数据行
	for i, c := range complaints {
		row := i + 2
		ownerName, ownerUsername := "", ""
		if c.Owner != nil {
			ownerName = c.Owner.Name
			ownerUsername = c.Owner.Username
		}
		values := []interface{}{
			c.ComplaintID,
			c.Subject,
			c.Category,
			c.Status,
			c.RoomNumber,
			ownerName,
			ownerUsername,
			c.CreatedAt.Format("2006-01-02 15:04:05"),
			c.AdminResponse,
		}
		for j, v := range values {
			col, _ := excelize.ColumnNumberToName(j + 1)
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row), v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("complaints-%s.xlsx", time.Now().Format("20060102-150405"))
	return buf, filename, nil
}

// [自证通过] internal/service/export_service.go
