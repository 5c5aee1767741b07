package facts

import (
	"fmt"
	"strconv"
	"strings"
)

// 每条磁盘记录的字段数: 分区名 总量 已用 可用 使用率
const diskFieldCount = 5

// 记录内的字段偏移
const (
	diskFieldUsage     = 2
	diskFieldAvailable = 3
	diskFieldPercent   = 4
)

// DiskUsage 单个分区的磁盘用量
// 容量字段已换算为GB，使用率为 [0,1] 区间的小数
type DiskUsage struct {
	UsageGB     float64 `json:"disk_usage"`
	AvailableGB float64 `json:"disk_avail"`
	UsedPercent float64 `json:"disk_used_percent"`
}

// Field 按指标名取字段值，供磁盘级指标同步使用
func (d DiskUsage) Field(metricName string) (float64, bool) {
	switch metricName {
	case "disk_usage":
		return d.UsageGB, true
	case "disk_avail":
		return d.AvailableGB, true
	case "disk_used_percent":
		return d.UsedPercent, true
	}
	return 0, false
}

// ParseDiskTable 解析磁盘用量表格文本
// 输入为空白符/换行分隔的表格，每条记录固定5个字段：
// 分区名、总量、已用(KB)、可用(KB)、使用率(带%后缀)。
// 已用/可用换算为GB，使用率去掉%并归一化到 [0,1]。
// 字段数不足或数值非法是硬错误——残缺的磁盘数据对容量告警有误导性，
// 宁可整体失败也不返回部分结果。
func ParseDiskTable(raw string) (map[string]DiskUsage, error) {
	fields := tokenize(raw)
	if len(fields) == 0 {
		return map[string]DiskUsage{}, nil
	}
	if len(fields)%diskFieldCount != 0 {
		return nil, &ParseError{Reason: fmt.Sprintf("字段数 %d 不是 %d 的整数倍", len(fields), diskFieldCount)}
	}

	parsed := make(map[string]DiskUsage, len(fields)/diskFieldCount)
	for i := 0; i < len(fields); i += diskFieldCount {
		group := fields[i : i+diskFieldCount]
		name := group[0]

		usage, err := parseKBToGB(group[diskFieldUsage])
		if err != nil {
			return nil, &ParseError{Reason: fmt.Sprintf("分区 %s 已用容量非法: %s", name, group[diskFieldUsage])}
		}
		avail, err := parseKBToGB(group[diskFieldAvailable])
		if err != nil {
			return nil, &ParseError{Reason: fmt.Sprintf("分区 %s 可用容量非法: %s", name, group[diskFieldAvailable])}
		}
		percent, err := parsePercent(group[diskFieldPercent])
		if err != nil {
			return nil, &ParseError{Reason: fmt.Sprintf("分区 %s 使用率非法: %s", name, group[diskFieldPercent])}
		}

		parsed[name] = DiskUsage{
			UsageGB:     usage,
			AvailableGB: avail,
			UsedPercent: percent,
		}
	}
	return parsed, nil
}

// tokenize 过滤空行和多余逗号后按空白符切分
func tokenize(raw string) []string {
	raw = strings.ReplaceAll(raw, ",", " ")
	return strings.Fields(raw)
}

// parseKBToGB KB转GB，除以1024两次
func parseKBToGB(s string) (float64, error) {
	kb, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return kb / 1024 / 1024, nil
}

// parsePercent 去掉%后缀并归一化为小数
func parsePercent(s string) (float64, error) {
	s = strings.TrimSuffix(s, "%")
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return p / 100, nil
}
