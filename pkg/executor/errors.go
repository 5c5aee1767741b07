package executor

import (
	"fmt"
	"time"
)

// ExecutionError 执行器自身配置错误（脚本不存在等），调用前即失败，不产生任何结果
type ExecutionError struct {
	Artifact string
	Err      error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("执行器配置错误, 脚本: %s, err: %v", e.Artifact, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// TimeoutError 单次执行超过截止时间
// 超时后不返回部分结果，调用方可以安全重试
type TimeoutError struct {
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("远程执行超时, 耗时: %s", e.Elapsed)
}
