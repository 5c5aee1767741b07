package facts

import "fmt"

// UnreachableHostError 采集结果中存在不可达主机
// 对该主机的本轮采集视为失败，由调用方决定是否影响同批其他主机
type UnreachableHostError struct {
	Host string
	Task string
}

func (e *UnreachableHostError) Error() string {
	return fmt.Sprintf("任务执行失败: %s, 主机不可达: %s", e.Task, e.Host)
}

// TaskFailureError 任务在主机上执行失败且标准错误非空
// 标准错误为空的失败视为脚本告警，不致命
type TaskFailureError struct {
	Host   string
	Task   string
	Stderr string
}

func (e *TaskFailureError) Error() string {
	return fmt.Sprintf("任务 %s 在主机 %s 上执行失败, err: %s", e.Task, e.Host, e.Stderr)
}

// ParseError 磁盘表格文本格式异常
// 只丢弃本次指标推导，不产生部分解析结果
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("磁盘数据解析失败: %s", e.Reason)
}
