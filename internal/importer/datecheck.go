package importer

import (
	"fmt"
	"time"

	"github.com/gridops/outage-gin/internal/model"
)

// 字段名, 与导入文件列对应
const (
	FieldOutageDate  = "outage_date"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
	FieldOrgUnit     = "org_unit"
	FieldSubUnit     = "sub_unit"
	FieldEquipmentID = "equipment_id"
)

// 作业时间窗口约束(当日分钟数)
const (
	earliestStart   = 6 * 60      // 06:00
	latestStart     = 19*60 + 30  // 19:30
	latestEnd       = 20 * 60     // 20:00
	minimumDuration = 30          // 最短停电时长(分钟)
)

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
}

// ParseDate 按接受的日历格式解析停电日期
func ParseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// DateChecker 停电日期与时间窗口校验器
// 纯函数式: 只依赖输入与预先计算的"今日", 不访问网络和状态
type DateChecker struct {
	MinLeadDays int       // 最少提前整天数
	Today       time.Time // 参考时区的当日零点
}

// Boundary 最早允许的停电日期
// 取 today+MinLeadDays+1, 保证差值检查 "> MinLeadDays 天" 成立
func (c *DateChecker) Boundary() time.Time {
	return c.Today.AddDate(0, 0, c.MinLeadDays+1)
}

// CheckDate 校验停电日期的提前期
// 所有违规独立上报, 不短路
func (c *DateChecker) CheckDate(date time.Time, raw string) []model.ValidationError {
	var errs []model.ValidationError
	if date.Before(c.Boundary()) {
		remain := int(date.Sub(c.Today).Hours() / 24)
		errs = append(errs, model.ValidationError{
			Field: FieldOutageDate,
			Message: fmt.Sprintf("must be scheduled more than %d days in advance (only %d days remain)",
				c.MinLeadDays, remain),
			Value: raw,
		})
	}
	return errs
}

// CheckWindow 校验起止时间窗口, start/end 为已归一化的 HH:MM
func (c *DateChecker) CheckWindow(start, end string) []model.ValidationError {
	var errs []model.ValidationError
	startMin := clockMinutes(start)
	endMin := clockMinutes(end)

	if startMin < earliestStart || startMin > latestStart {
		errs = append(errs, model.ValidationError{
			Field:   FieldStartTime,
			Message: "start time must be between 06:00 and 19:30",
			Value:   start,
		})
	}
	if endMin > latestEnd {
		errs = append(errs, model.ValidationError{
			Field:   FieldEndTime,
			Message: "end time must not be later than 20:00",
			Value:   end,
		})
	}
	if endMin-startMin < minimumDuration {
		errs = append(errs, model.ValidationError{
			Field:   FieldEndTime,
			Message: fmt.Sprintf("outage window must be at least %d minutes", minimumDuration),
			Value:   end,
		})
	}
	return errs
}

// Midnight 计算指定时区的当日零点
func Midnight(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
