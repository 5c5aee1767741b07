package tasks

import (
	"fmt"
	"net"
	"path/filepath"
	"strconv"
	"time"

	"cmdb/internal/ctx"
	"cmdb/internal/global"
	"cmdb/internal/models"
	"cmdb/pkg/executor"
	"cmdb/pkg/facts"

	"github.com/zeromicro/go-zero/core/logc"
)

// MonitorSyncJob 监控数据同步任务
// 每个周期遍历全部同步地址，逐台采集并按指标落库；
// 单台主机失联或单个指标缺失只影响自身，不中断整个批次
type MonitorSyncJob struct {
	ctx    *ctx.Context
	runner *executor.Runner
}

func NewMonitorSyncJob(ctx *ctx.Context, runner *executor.Runner) *MonitorSyncJob {
	return &MonitorSyncJob{
		ctx:    ctx,
		runner: runner,
	}
}

func (j *MonitorSyncJob) Name() string {
	return "monitor_sync"
}

func (j *MonitorSyncJob) Run() {
	ips, err := j.ctx.DB.IP().ListSyncIPs()
	if err != nil {
		logc.Errorf(j.ctx.Ctx, "获取同步地址列表失败: %s", err.Error())
		return
	}
	metrics, err := j.ctx.DB.Metric().ListAll()
	if err != nil {
		logc.Errorf(j.ctx.Ctx, "获取指标列表失败: %s", err.Error())
		return
	}
	if len(ips) == 0 || len(metrics) == 0 {
		return
	}

	for _, ip := range ips {
		j.syncHost(ip, metrics)
	}
}

func (j *MonitorSyncJob) syncHost(ip models.IP, metrics []models.Metric) {
	host, err := j.ctx.DB.Host().Get(ip.Host)
	if err != nil {
		logc.Errorf(j.ctx.Ctx, "同步地址找不到归属主机, address: %s, host: %s, err: %s",
			ip.Address, ip.Host, err.Error())
		return
	}

	addr := net.JoinHostPort(ip.Address, strconv.Itoa(host.SSHPort))
	artifact := filepath.Join(global.Config.Ansible.ScriptDir, global.Config.Ansible.MonitorPlaybook)
	// 纳管时已下发公钥，采集走密钥认证
	collector, err := j.runner.Execute(j.ctx.Ctx, []string{addr}, []string{artifact}, nil,
		executor.Credentials{User: host.Username})
	if err != nil {
		logc.Errorf(j.ctx.Ctx, "监控采集执行失败, addr: %s, err: %s", addr, err.Error())
		return
	}
	normalized, err := facts.Normalize(collector)
	if err != nil {
		logc.Errorf(j.ctx.Ctx, "监控采集结果异常, addr: %s, err: %s", addr, err.Error())
		return
	}
	raw, ok := normalized[ip.Address]
	if !ok {
		logc.Errorf(j.ctx.Ctx, "监控采集无返回数据, addr: %s", addr)
		return
	}

	now := time.Now()
	for _, metric := range metrics {
		points, err := j.buildPoints(host.UUID, metric, raw, now)
		if err != nil {
			logc.Errorf(j.ctx.Ctx, "指标解析失败, host: %s, metric: %s, err: %s",
				host.UUID, metric.Name, err.Error())
			continue
		}
		if len(points) == 0 {
			continue
		}
		if err := j.ctx.DB.MonitorData().BulkCreate(points); err != nil {
			logc.Errorf(j.ctx.Ctx, "指标数据入库失败, host: %s, metric: %s, err: %s",
				host.UUID, metric.Name, err.Error())
		}
	}
}

// buildPoints 把单个指标的事实值转换成采样点
// 磁盘级指标统一读 disk_info 事实，按分区展开，分区名写入 extra_flag
func (j *MonitorSyncJob) buildPoints(instance string, metric models.Metric, raw map[string]interface{}, now time.Time) ([]models.MonitorData, error) {
	factName := metric.Name
	if metric.IsDiskMetric() {
		factName = "disk_info"
	}
	value, ok := raw[factName]
	if !ok {
		logc.Infof(j.ctx.Ctx, "采集结果缺少事实项, instance: %s, fact: %s", instance, factName)
		return nil, nil
	}

	if !metric.IsDiskMetric() {
		v, err := coerceFloat(value)
		if err != nil {
			return nil, err
		}
		return []models.MonitorData{{
			Instance: instance,
			Metric:   metric.UUID,
			Value:    v,
			Time:     now,
		}}, nil
	}

	usages, err := facts.ParseDiskTable(fmt.Sprint(value))
	if err != nil {
		return nil, err
	}
	points := make([]models.MonitorData, 0, len(usages))
	for partition, usage := range usages {
		v, ok := usage.Field(metric.Name)
		if !ok {
			continue
		}
		points = append(points, models.MonitorData{
			Instance:  instance,
			Metric:    metric.UUID,
			Value:     v,
			ExtraFlag: partition,
			Time:      now,
		})
	}
	return points, nil
}

func coerceFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("无法把 %T 类型的值转换为数值", value)
	}
}
