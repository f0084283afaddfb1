package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gridops/outage-gin/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// 文件级错误: 任一触发即整体中止, 零行被处理
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrFileTooLarge      = errors.New("file exceeds size limit")
	ErrTooManyRows       = errors.New("file exceeds row limit")
	ErrEmptyFile         = errors.New("file contains no data rows")
	ErrUnreadableFile    = errors.New("file content is unreadable")
)

// Limits 文件级限制
type Limits struct {
	MaxFileSize      int64 // 字节
	MaxRowsCSV       int   // 数据行数上限(不含表头)
	MaxRowsXLSX      int   // XLSX 独立配置的上限
	ErrorDetailLimit int   // 错误报告明细条数
}

// Pipeline 批量导入管道
// 按文件顺序逐行校验; 行内的子单位/设备查询逐行等待,
// 后续行因此能命中同一次运行的子单位缓存
type Pipeline struct {
	dir    Directory
	dates  *DateChecker
	limits Limits
	logger *logrus.Logger
}

// NewPipeline 创建导入管道
func NewPipeline(dir Directory, dates *DateChecker, limits Limits, logger *logrus.Logger) *Pipeline {
	return &Pipeline{dir: dir, dates: dates, limits: limits, logger: logger}
}

// Run 读取表格文件并逐行校验
// 返回导入汇总与通过校验的草稿; 文件级违规以 error 返回, 此时不产出任何草稿
func (p *Pipeline) Run(ctx context.Context, file io.Reader, filename string, size int64,
	layout RowLayout, knownUnits []model.OrgUnitModel) (*model.ImportResult, []model.DraftRequest, error) {

	if size > p.limits.MaxFileSize {
		return nil, nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, size, p.limits.MaxFileSize)
	}

	var (
		rows    [][]string
		err     error
		ceiling int
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		rows, err = readCSV(file)
		ceiling = p.limits.MaxRowsCSV
	case ".xlsx":
		rows, err = readXLSX(file)
		ceiling = p.limits.MaxRowsXLSX
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	// 表头行永远跳过, 不做语义校验
	if len(rows) < 2 {
		return nil, nil, ErrEmptyFile
	}
	data := rows[1:]
	if len(data) > ceiling {
		return nil, nil, fmt.Errorf("%w: %d rows (limit %d)", ErrTooManyRows, len(data), ceiling)
	}

	resolver := NewResolver(p.dir, knownUnits, p.logger)
	validator := NewRowValidator(layout, p.dates, resolver)

	result := &model.ImportResult{}
	var drafts []model.DraftRequest
	for i, rec := range data {
		line := i + 2 // 表头为第 1 行
		draft, errs := validator.Validate(ctx, line, rec)
		if draft == nil && errs == nil {
			continue // 全空行
		}
		result.TotalRows++
		if len(errs) > 0 {
			result.Errors = append(result.Errors, errs...)
			continue
		}
		result.Accepted++
		drafts = append(drafts, *draft)
	}

	result.Partial = result.Accepted > 0 && len(result.Errors) > 0
	result.Report = RenderErrors(result.Errors, p.limits.ErrorDetailLimit)

	p.logger.WithFields(logrus.Fields{
		"file":     filename,
		"total":    result.TotalRows,
		"accepted": result.Accepted,
		"rejected": result.Rejected(),
	}).Info("import completed")

	return result, drafts, nil
}

// readCSV 读取 CSV 全部行
// 标准 reader 已处理引号字段内的分隔符与双引号转义
func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}

// readXLSX 读取首个工作表的全部行
func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetRows(f.GetSheetName(0))
}

// RenderErrors 生成前 limit 条错误明细, 其余仅计数
func RenderErrors(errs []model.ValidationError, limit int) []string {
	if len(errs) == 0 {
		return nil
	}
	n := len(errs)
	if limit > 0 && n > limit {
		n = limit
	}
	report := make([]string, 0, n+1)
	for _, e := range errs[:n] {
		report = append(report, fmt.Sprintf("line %d %s: %s (%q)", e.Line, e.Field, e.Message, e.Value))
	}
	if rest := len(errs) - n; rest > 0 {
		report = append(report, fmt.Sprintf("... and %d more errors", rest))
	}
	return report
}
