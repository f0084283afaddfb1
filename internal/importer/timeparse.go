package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NormalizeClock 将任意时间表示归一化为 HH:MM (24 小时制)
// 接受的形式: "H:MM"/"HH:MM", 3-4 位纯数字 (HMM/HHMM), "H.MM" 句点分隔,
// 以及电子表格的日分数序列值 (如 0.354166… → 08:30)
// 无法解析时返回空串, 不抛出任何错误
func NormalizeClock(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) < 2 {
			return ""
		}
		return formatClock(parts[0], parts[1])
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ""
	}

	if strings.Contains(s, ".") {
		// 小于 1 的小数按日分数序列值处理, 否则句点视为时分分隔符
		if f >= 0 && f < 1 {
			return clockFromSerial(f)
		}
		parts := strings.SplitN(s, ".", 2)
		if len(parts[1]) != 2 {
			return ""
		}
		return formatClock(parts[0], parts[1])
	}

	// 3-4 位纯数字: HMM / HHMM
	switch len(s) {
	case 3:
		return formatClock(s[:1], s[1:])
	case 4:
		return formatClock(s[:2], s[2:])
	}
	return ""
}

// clockFromSerial 按 floor(value*24) 取小时, 余数换算分钟
func clockFromSerial(f float64) string {
	hour := int(math.Floor(f * 24))
	minute := int(math.Round((f*24 - float64(hour)) * 60))
	if minute == 60 {
		hour++
		minute = 0
	}
	if hour > 23 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

func formatClock(hs, ms string) string {
	hour, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return ""
	}
	minute, err := strconv.Atoi(strings.TrimSpace(ms))
	if err != nil {
		return ""
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// clockMinutes 将 HH:MM 换算为当日分钟数, 仅用于已归一化的值
func clockMinutes(clock string) int {
	hour, _ := strconv.Atoi(clock[:2])
	minute, _ := strconv.Atoi(clock[3:])
	return hour*60 + minute
}
