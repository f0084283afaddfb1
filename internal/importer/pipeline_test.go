package importer_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gridops/outage-gin/internal/importer"
	"github.com/gridops/outage-gin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = "outage_date,start_time,end_time,equipment_id,location,area\n"

func newPipeline(dir *fakeDirectory) *importer.Pipeline {
	checker := &importer.DateChecker{
		MinLeadDays: 10,
		Today:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	limits := importer.Limits{
		MaxFileSize:      10 * 1024 * 1024,
		MaxRowsCSV:       1000,
		MaxRowsXLSX:      1000,
		ErrorDetailLimit: 10,
	}
	return importer.NewPipeline(dir, checker, limits, testLogger())
}

type pipelineOutput struct {
	result *model.ImportResult
	drafts []model.DraftRequest
}

func runCSV(t *testing.T, p *importer.Pipeline, content string) (*pipelineOutput, error) {
	t.Helper()
	result, drafts, err := p.Run(context.Background(), strings.NewReader(content),
		"import.csv", int64(len(content)), importer.RowLayout{CallerUnitID: "N1"}, nil)
	if err != nil {
		return nil, err
	}
	return &pipelineOutput{result: result, drafts: drafts}, nil
}

// TestPipelineAllValid 测试全部通过的导入
func TestPipelineAllValid(t *testing.T) {
	p := newPipeline(equippedDirectory())

	out, err := runCSV(t, p, csvHeader+"2099-01-01,08:00,09:00,TX001,,\n")
	require.NoError(t, err)

	assert.Equal(t, 1, out.result.TotalRows)
	assert.Equal(t, 1, out.result.Accepted)
	assert.Empty(t, out.result.Errors)
	assert.False(t, out.result.Partial)
	require.Len(t, out.drafts, 1)
	assert.Equal(t, "TX001", out.drafts[0].EquipmentID)
}

// TestPipelineRowRejected 测试单行拒绝
func TestPipelineRowRejected(t *testing.T) {
	p := newPipeline(equippedDirectory())

	out, err := runCSV(t, p, csvHeader+"2099-01-01,08:00,08:20,TX001,,\n")
	require.NoError(t, err)

	assert.Equal(t, 1, out.result.TotalRows)
	assert.Equal(t, 0, out.result.Accepted)
	require.Len(t, out.result.Errors, 1)
	assert.Equal(t, 2, out.result.Errors[0].Line)
	assert.Equal(t, importer.FieldEndTime, out.result.Errors[0].Field)
	assert.False(t, out.result.Partial)
	assert.Empty(t, out.drafts)
}

// TestPipelinePartial 测试部分成功与错误报告截断
func TestPipelinePartial(t *testing.T) {
	p := newPipeline(equippedDirectory())

	var sb strings.Builder
	sb.WriteString(csvHeader)
	sb.WriteString("2099-01-01,08:00,09:00,TX001,,\n")
	for i := 0; i < 12; i++ {
		sb.WriteString("2099-01-01,08:00,08:20,TX001,,\n")
	}

	out, err := runCSV(t, p, sb.String())
	require.NoError(t, err)

	assert.Equal(t, 13, out.result.TotalRows)
	assert.Equal(t, 1, out.result.Accepted)
	assert.Len(t, out.result.Errors, 12)
	assert.True(t, out.result.Partial)
	require.Len(t, out.drafts, 1)

	// 报告只含前 10 条明细, 其余计数
	require.Len(t, out.result.Report, 11)
	assert.Contains(t, out.result.Report[10], "2 more errors")
}

// TestPipelineQuotedFields 测试引号字段的反转义
func TestPipelineQuotedFields(t *testing.T) {
	p := newPipeline(equippedDirectory())

	out, err := runCSV(t, p,
		csvHeader+`2099-01-01,08:00,09:00,TX001,"Pole 7, Main Road","said ""downtown"" block"`+"\n")
	require.NoError(t, err)

	require.Len(t, out.drafts, 1)
	assert.Equal(t, "Pole 7, Main Road", out.drafts[0].Location)
	assert.Equal(t, `said "downtown" block`, out.drafts[0].Area)
}

// TestPipelineBlankRows 测试空行不计数
func TestPipelineBlankRows(t *testing.T) {
	p := newPipeline(equippedDirectory())

	out, err := runCSV(t, p, csvHeader+"2099-01-01,08:00,09:00,TX001,,\n,,,,,\n")
	require.NoError(t, err)

	assert.Equal(t, 1, out.result.TotalRows)
	assert.Equal(t, 1, out.result.Accepted)
	assert.Empty(t, out.result.Errors)
}

// TestPipelineTooManyRows 测试行数上限
func TestPipelineTooManyRows(t *testing.T) {
	p := newPipeline(equippedDirectory())

	var sb strings.Builder
	sb.WriteString(csvHeader)
	for i := 0; i < 1200; i++ {
		sb.WriteString("2099-01-01,08:00,09:00,TX001,,\n")
	}

	_, err := runCSV(t, p, sb.String())
	require.Error(t, err)
	assert.ErrorIs(t, err, importer.ErrTooManyRows)
}

// TestPipelineFileLevelErrors 测试其余文件级校验
func TestPipelineFileLevelErrors(t *testing.T) {
	p := newPipeline(equippedDirectory())
	ctx := context.Background()
	layout := importer.RowLayout{CallerUnitID: "N1"}

	// 扩展名不支持
	_, _, err := p.Run(ctx, strings.NewReader("x"), "import.txt", 1, layout, nil)
	assert.ErrorIs(t, err, importer.ErrUnsupportedFormat)

	// 文件超限
	_, _, err = p.Run(ctx, strings.NewReader("x"), "import.csv", 11*1024*1024, layout, nil)
	assert.ErrorIs(t, err, importer.ErrFileTooLarge)

	// 只有表头
	_, _, err = p.Run(ctx, strings.NewReader(csvHeader), "import.csv", int64(len(csvHeader)), layout, nil)
	assert.ErrorIs(t, err, importer.ErrEmptyFile)

	// 内容不可读 (引号未闭合)
	broken := csvHeader + `"2099-01-01,08:00` + "\n"
	_, _, err = p.Run(ctx, strings.NewReader(broken), "import.csv", int64(len(broken)), layout, nil)
	assert.ErrorIs(t, err, importer.ErrUnreadableFile)
}

// TestRenderErrors 测试错误报告渲染
func TestRenderErrors(t *testing.T) {
	assert.Nil(t, importer.RenderErrors(nil, 10))
}
