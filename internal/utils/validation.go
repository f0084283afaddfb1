package utils

import (
	"errors"
	"html"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrEmptyID ID 为空
	ErrEmptyID = errors.New("ID is empty")
	// ErrInvalidIDFormat ID 格式非法
	ErrInvalidIDFormat = errors.New("ID contains invalid characters")
)

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateRequestID 验证申请 ID 格式
// 只允许字母、数字、连字符、下划线
func ValidateRequestID(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if !idPattern.MatchString(id) {
		return ErrInvalidIDFormat
	}
	return nil
}

// SanitizeString 清理自由文本, HTML 转义并移除控制字符
func SanitizeString(input string) string {
	sanitized := html.EscapeString(input)

	var result strings.Builder
	for _, r := range sanitized {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}
