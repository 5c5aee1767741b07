package facts

import (
	"errors"
	"testing"

	"cmdb/pkg/executor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFlattensFacts(t *testing.T) {
	c := executor.NewCollector()
	c.Record(executor.OutcomeOK, "10.0.0.1", executor.SetupTaskName, executor.Result{Msg: "connected"})
	c.Record(executor.OutcomeOK, "10.0.0.1", "facts", executor.Result{
		Facts: map[string]interface{}{"cores": 8, "release": "CentOS 7.9"},
	})
	c.Record(executor.OutcomeOK, "10.0.0.1", "monitor", executor.Result{
		Facts: map[string]interface{}{"cpu_usage": 0.42},
	})

	normalized, err := Normalize(c)
	require.NoError(t, err)
	require.Contains(t, normalized, "10.0.0.1")

	flat := normalized["10.0.0.1"]
	assert.Equal(t, 8, flat["cores"])
	assert.Equal(t, "CentOS 7.9", flat["release"])
	assert.Equal(t, 0.42, flat["cpu_usage"])
	// 探测任务不贡献事实
	assert.NotContains(t, flat, "connected")
}

// 同名事实后执行的任务覆盖先执行的
func TestNormalizeLastWriteWins(t *testing.T) {
	c := executor.NewCollector()
	c.Record(executor.OutcomeOK, "10.0.0.1", "first", executor.Result{
		Facts: map[string]interface{}{"a": 1},
	})
	c.Record(executor.OutcomeOK, "10.0.0.1", "second", executor.Result{
		Facts: map[string]interface{}{"a": 2},
	})

	normalized, err := Normalize(c)
	require.NoError(t, err)
	assert.Equal(t, 2, normalized["10.0.0.1"]["a"])
}

// 不可达优先：主机即使同时出现在成功分区也按不可达处理
func TestNormalizeUnreachableWins(t *testing.T) {
	c := executor.NewCollector()
	c.Record(executor.OutcomeOK, "10.0.0.1", "facts", executor.Result{
		Facts: map[string]interface{}{"cores": 8},
	})
	c.Record(executor.OutcomeUnreachable, "10.0.0.1", executor.SetupTaskName, executor.Result{Msg: "dial timeout"})

	_, err := Normalize(c)
	require.Error(t, err)

	var unreachable *UnreachableHostError
	require.True(t, errors.As(err, &unreachable))
	assert.Equal(t, "10.0.0.1", unreachable.Host)
	assert.Contains(t, err.Error(), "10.0.0.1")
}

func TestNormalizeFailedWithStderr(t *testing.T) {
	c := executor.NewCollector()
	c.Record(executor.OutcomeFailed, "10.0.0.2", "monitor", executor.Result{Stderr: "no such file", RC: 1})

	_, err := Normalize(c)
	var failure *TaskFailureError
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, "10.0.0.2", failure.Host)
	assert.Equal(t, "monitor", failure.Task)
	assert.Equal(t, "no such file", failure.Stderr)
}

// 标准错误为空的失败按脚本告警容忍
func TestNormalizeFailedWithoutStderrTolerated(t *testing.T) {
	c := executor.NewCollector()
	c.Record(executor.OutcomeOK, "10.0.0.1", "facts", executor.Result{
		Facts: map[string]interface{}{"cores": 4},
	})
	c.Record(executor.OutcomeFailed, "10.0.0.1", "optional_check", executor.Result{RC: 3})

	normalized, err := Normalize(c)
	require.NoError(t, err)
	assert.Equal(t, 4, normalized["10.0.0.1"]["cores"])
}

func TestNormalizeEmptyCollector(t *testing.T) {
	normalized, err := Normalize(executor.NewCollector())
	require.NoError(t, err)
	assert.Empty(t, normalized)
}
