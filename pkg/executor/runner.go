package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"cmdb/pkg/tools"

	"github.com/bytedance/sonic"
	"github.com/zeromicro/go-zero/core/logc"
	"golang.org/x/sync/semaphore"
)

// Runner 远程命令执行器
// 一次 Execute 面向一批目标地址并发执行同一组脚本，
// 单台主机的连接失败只影响它自己的分区归属，不会中断其他主机。
type Runner struct {
	transport Transport
	forks     int
	timeout   time.Duration
}

// NewRunner 创建执行器实例
// forks 为单次执行的最大并发连接数，timeout 为整次执行的截止时间
func NewRunner(transport Transport, forks int, timeout time.Duration) *Runner {
	if forks <= 0 {
		forks = 100
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Runner{
		transport: transport,
		forks:     forks,
		timeout:   timeout,
	}
}

// Execute 对所有目标地址执行给定脚本集
// addresses 为 "host:port" 列表，artifacts 为本地脚本路径列表，
// vars 注入远端环境变量。脚本不存在返回 *ExecutionError；
// 超过截止时间返回 *TimeoutError，此时不返回任何部分结果。
func (r *Runner) Execute(ctx context.Context, addresses, artifacts []string, vars map[string]string, creds Credentials) (*Collector, error) {
	if len(artifacts) == 0 {
		return nil, &ExecutionError{Err: fmt.Errorf("未指定执行脚本")}
	}

	// 先行解析全部脚本，任何一个缺失都在建连前失败
	scripts := make([]script, 0, len(artifacts))
	for _, artifact := range artifacts {
		content, err := os.ReadFile(artifact)
		if err != nil {
			return nil, &ExecutionError{Artifact: artifact, Err: err}
		}
		scripts = append(scripts, script{
			task: strings.TrimSuffix(filepath.Base(artifact), filepath.Ext(artifact)),
			body: string(content),
		})
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	collector := NewCollector()
	started := time.Now()

	var wg sync.WaitGroup
	sem := semaphore.NewWeighted(int64(r.forks))
	for _, address := range addresses {
		wg.Add(1)
		go func(addr string) {
			defer wg.Done()

			// 截止时间到达后未排到的主机直接放弃
			if err := sem.Acquire(runCtx, 1); err != nil {
				return
			}
			defer sem.Release(1)

			r.executeHost(runCtx, collector, addr, scripts, vars, creds)
		}(address)
	}
	wg.Wait()

	// 截止时间到达后丢弃已收集的部分结果，保证失败关闭语义
	if runCtx.Err() == context.DeadlineExceeded {
		return nil, &TimeoutError{Elapsed: time.Since(started)}
	}
	return collector, nil
}

// executeHost 在单台主机上顺序执行探测任务与全部脚本
func (r *Runner) executeHost(ctx context.Context, collector *Collector, addr string, scripts []script, vars map[string]string, creds Credentials) {
	host := hostOf(addr)

	if err := r.transport.Ping(ctx, addr, creds); err != nil {
		collector.Record(OutcomeUnreachable, host, SetupTaskName, Result{Msg: err.Error(), RC: -1})
		return
	}
	collector.Record(OutcomeOK, host, SetupTaskName, Result{Msg: "connected"})

	for _, sc := range scripts {
		if ctx.Err() != nil {
			return
		}

		stdout, stderr, rc, err := r.transport.Run(ctx, addr, creds, sc.body, vars)
		if err != nil {
			collector.Record(OutcomeUnreachable, host, sc.task, Result{Msg: err.Error(), Stderr: stderr, RC: -1})
			return
		}
		if rc != 0 {
			collector.Record(OutcomeFailed, host, sc.task, Result{Stdout: stdout, Stderr: stderr, RC: rc})
			continue
		}

		collector.Record(OutcomeOK, host, sc.task, Result{
			Facts:  parseFacts(ctx, host, sc.task, stdout),
			Stdout: stdout,
			Stderr: stderr,
		})
	}
}

// parseFacts 将脚本标准输出解析为事实字典
// 脚本允许输出非JSON内容（如纯告警文本），此时不产生事实项
func parseFacts(ctx context.Context, host, task, stdout string) map[string]interface{} {
	stdout = strings.TrimSpace(stdout)
	if stdout == "" || !strings.HasPrefix(stdout, "{") {
		return nil
	}
	var facts map[string]interface{}
	if err := sonic.UnmarshalString(stdout, &facts); err != nil {
		logc.Errorf(ctx, "解析事实输出失败, host: %s, task: %s, err: %s", host, task, err.Error())
		return nil
	}
	return facts
}

func hostOf(addr string) string {
	return tools.ExtractIPFromInstance(addr)
}

type script struct {
	task string
	body string
}
