package executor

import "sync"

// Outcome 单个任务在单台主机上的执行结局
type Outcome string

const (
	OutcomeOK          Outcome = "ok"
	OutcomeFailed      Outcome = "failed"
	OutcomeUnreachable Outcome = "unreachable"
)

// SetupTaskName 连接探测任务名，不携带事实数据，归一化时会跳过
const SetupTaskName = "Gathering Facts"

// Result 单个任务的原始执行结果
// 成功任务的 Facts 为脚本标准输出解析出的事实字典
type Result struct {
	Facts  map[string]interface{} `json:"facts,omitempty"`
	Stdout string                 `json:"stdout,omitempty"`
	Stderr string                 `json:"stderr,omitempty"`
	Msg    string                 `json:"msg,omitempty"`
	RC     int                    `json:"rc"`
}

// hostRecord 单台主机在一个分区内的任务结果，保留任务的首次写入顺序
type hostRecord struct {
	order   []string
	results map[string]Result
}

// Collector 按结局收集各主机各任务的执行结果
// ok/failed/unreachable 三个分区相互独立，主机重试后允许同时出现在多个分区；
// 同一分区内同主机同任务名后写覆盖先写，主机间无顺序保证，
// 主机内保留任务执行顺序。
// 状态在构造函数中逐实例初始化，worker 并发写入由互斥锁保护。
type Collector struct {
	mu         sync.RWMutex
	partitions map[Outcome]map[string]*hostRecord
}

// NewCollector 创建结果收集器实例
func NewCollector() *Collector {
	return &Collector{
		partitions: map[Outcome]map[string]*hostRecord{
			OutcomeOK:          make(map[string]*hostRecord),
			OutcomeFailed:      make(map[string]*hostRecord),
			OutcomeUnreachable: make(map[string]*hostRecord),
		},
	}
}

// Record 记录一条执行结果
func (c *Collector) Record(outcome Outcome, host, task string, rst Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	partition, ok := c.partitions[outcome]
	if !ok {
		return
	}
	record := partition[host]
	if record == nil {
		record = &hostRecord{results: make(map[string]Result)}
		partition[host] = record
	}
	if _, seen := record.results[task]; !seen {
		record.order = append(record.order, task)
	}
	record.results[task] = rst
}

// Partition 读取指定分区的快照
func (c *Collector) Partition(outcome Outcome) map[string]map[string]Result {
	c.mu.RLock()
	defer c.mu.RUnlock()

	src := c.partitions[outcome]
	snapshot := make(map[string]map[string]Result, len(src))
	for host, record := range src {
		hostCopy := make(map[string]Result, len(record.results))
		for task, rst := range record.results {
			hostCopy[task] = rst
		}
		snapshot[host] = hostCopy
	}
	return snapshot
}

// TaskOrder 返回主机在指定分区内任务的执行顺序
func (c *Collector) TaskOrder(outcome Outcome, host string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	record := c.partitions[outcome][host]
	if record == nil {
		return nil
	}
	order := make([]string, len(record.order))
	copy(order, record.order)
	return order
}

// OK 成功分区快照
func (c *Collector) OK() map[string]map[string]Result {
	return c.Partition(OutcomeOK)
}

// Failed 失败分区快照
func (c *Collector) Failed() map[string]map[string]Result {
	return c.Partition(OutcomeFailed)
}

// Unreachable 不可达分区快照
func (c *Collector) Unreachable() map[string]map[string]Result {
	return c.Partition(OutcomeUnreachable)
}
