package utils

import "strings"

// EscapeLike 转义 LIKE 模式中的通配符
// 用户输入作为子串匹配时, % 和 _ 必须按字面处理
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
