package model

// ValidationError 行级校验错误
// Line 为源文件中的行号(表头为第 1 行, 首条数据行为第 2 行)
type ValidationError struct {
	Line    int    `json:"line"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value"`
}

// ImportResult 一次导入的汇总结果
type ImportResult struct {
	TotalRows int               `json:"total_rows"` // 扫描的数据行数(空行不计)
	Accepted  int               `json:"accepted"`
	Errors    []ValidationError `json:"errors"`
	Partial   bool              `json:"partial"`          // 部分成功: 既有通过也有拒绝
	Report    []string          `json:"report,omitempty"` // 前 N 条错误明细
}

// Rejected 被拒绝的行数
func (r *ImportResult) Rejected() int {
	seen := make(map[int]struct{}, len(r.Errors))
	for _, e := range r.Errors {
		seen[e.Line] = struct{}{}
	}
	return len(seen)
}
