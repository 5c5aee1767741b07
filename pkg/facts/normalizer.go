package facts

import (
	"cmdb/pkg/executor"
)

// Normalize 将收集器的成功分区展平为 主机 -> 事实名 -> 值 的单层映射
// 同一主机多个任务贡献的事实合并为一张表，键冲突时后执行的任务覆盖先执行的；
// 连接探测任务不携带事实数据，跳过。
// 不可达分区非空立即返回 *UnreachableHostError（优先于成功分区——主机重试后
// 即使出现在成功分区，仍按不可达处理）；失败分区中标准错误非空的任务返回
// *TaskFailureError，标准错误为空的失败按脚本告警容忍。
func Normalize(c *executor.Collector) (map[string]map[string]interface{}, error) {
	for host, tasks := range c.Unreachable() {
		for task := range tasks {
			return nil, &UnreachableHostError{Host: host, Task: task}
		}
		return nil, &UnreachableHostError{Host: host, Task: executor.SetupTaskName}
	}

	for host, tasks := range c.Failed() {
		for task, rst := range tasks {
			if rst.Stderr != "" {
				return nil, &TaskFailureError{Host: host, Task: task, Stderr: rst.Stderr}
			}
		}
	}

	normalized := make(map[string]map[string]interface{})
	for host, tasks := range c.OK() {
		flat := make(map[string]interface{})
		// 按执行顺序合并，保证后执行任务的同名事实生效
		for _, task := range c.TaskOrder(executor.OutcomeOK, host) {
			if task == executor.SetupTaskName {
				continue
			}
			for k, v := range tasks[task].Facts {
				flat[k] = v
			}
		}
		normalized[host] = flat
	}
	return normalized, nil
}
