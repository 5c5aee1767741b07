package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"cmdb/internal/ctx"
	"cmdb/internal/global"
	"cmdb/internal/models"
	"cmdb/internal/repo"
	"cmdb/internal/types"
	"cmdb/pkg/executor"
	"cmdb/pkg/tools"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeEntry 内存版数据访问入口，只实现用例涉及的方法
type fakeEntry struct {
	repo.Entry
	host        *fakeHostRepo
	disk        *fakeDiskRepo
	ip          *fakeIPRepo
	metric      *fakeMetricRepo
	monitorData *fakeMonitorDataRepo
}

func newFakeEntry() *fakeEntry {
	return &fakeEntry{
		host:        &fakeHostRepo{hosts: map[string]models.Host{}},
		disk:        &fakeDiskRepo{disks: map[string]models.Disk{}, joins: map[string][]string{}},
		ip:          &fakeIPRepo{ips: map[string]models.IP{}},
		metric:      &fakeMetricRepo{},
		monitorData: &fakeMonitorDataRepo{},
	}
}

func (f *fakeEntry) Host() repo.InterHostRepo               { return f.host }
func (f *fakeEntry) Disk() repo.InterDiskRepo               { return f.disk }
func (f *fakeEntry) IP() repo.InterIPRepo                   { return f.ip }
func (f *fakeEntry) Metric() repo.InterMetricRepo           { return f.metric }
func (f *fakeEntry) MonitorData() repo.InterMonitorDataRepo { return f.monitorData }
func (f *fakeEntry) Tx(fn func(tx repo.Entry) error) error  { return fn(f) }

type fakeHostRepo struct {
	repo.InterHostRepo
	hosts map[string]models.Host
}

func (f *fakeHostRepo) Get(uuid string) (models.Host, error) {
	h, ok := f.hosts[uuid]
	if !ok {
		return models.Host{}, gorm.ErrRecordNotFound
	}
	return h, nil
}

func (f *fakeHostRepo) Create(host models.Host) error {
	f.hosts[host.UUID] = host
	return nil
}

func (f *fakeHostRepo) Update(host models.Host) error {
	f.hosts[host.UUID] = host
	return nil
}

func (f *fakeHostRepo) Delete(uuid string) error {
	delete(f.hosts, uuid)
	return nil
}

type fakeDiskRepo struct {
	repo.InterDiskRepo
	disks map[string]models.Disk
	// joins: diskID -> hostIDs
	joins map[string][]string
}

func (f *fakeDiskRepo) Get(uuid string) (models.Disk, error) {
	d, ok := f.disks[uuid]
	if !ok {
		return models.Disk{}, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (f *fakeDiskRepo) Create(disk models.Disk) error {
	if _, ok := f.disks[disk.UUID]; ok {
		return &repo.DuplicateResourceError{Resource: "disk", Key: disk.UUID}
	}
	f.disks[disk.UUID] = disk
	return nil
}

func (f *fakeDiskRepo) AttachHost(diskID, hostID string) error {
	for _, h := range f.joins[diskID] {
		if h == hostID {
			return nil
		}
	}
	f.joins[diskID] = append(f.joins[diskID], hostID)
	return nil
}

func (f *fakeDiskRepo) DetachByHost(hostID string) error {
	for diskID, hosts := range f.joins {
		kept := hosts[:0]
		for _, h := range hosts {
			if h != hostID {
				kept = append(kept, h)
			}
		}
		f.joins[diskID] = kept
	}
	return nil
}

func (f *fakeDiskRepo) DiskIDsByHost(hostID string) ([]string, error) {
	var ids []string
	for diskID, hosts := range f.joins {
		for _, h := range hosts {
			if h == hostID {
				ids = append(ids, diskID)
			}
		}
	}
	return ids, nil
}

func (f *fakeDiskRepo) FreeOrphans(diskIDs []string) error {
	for _, id := range diskIDs {
		if len(f.joins[id]) > 0 {
			continue
		}
		d := f.disks[id]
		d.Status = models.StatusFree
		f.disks[id] = d
	}
	return nil
}

type fakeIPRepo struct {
	repo.InterIPRepo
	ips map[string]models.IP
}

func (f *fakeIPRepo) Get(uuid string) (models.IP, error) {
	ip, ok := f.ips[uuid]
	if !ok {
		return models.IP{}, gorm.ErrRecordNotFound
	}
	return ip, nil
}

func (f *fakeIPRepo) GetByAddress(address string) (models.IP, error) {
	for _, ip := range f.ips {
		if ip.Address == address {
			return ip, nil
		}
	}
	return models.IP{}, gorm.ErrRecordNotFound
}

func (f *fakeIPRepo) ClearSyncFlag(hostID string) error {
	for uuid, ip := range f.ips {
		if ip.Host == hostID && ip.UsedToSync {
			ip.UsedToSync = false
			f.ips[uuid] = ip
		}
	}
	return nil
}

func (f *fakeIPRepo) Create(ip models.IP) error {
	f.ips[ip.UUID] = ip
	return nil
}

func (f *fakeIPRepo) Update(ip models.IP) error {
	f.ips[ip.UUID] = ip
	return nil
}

func (f *fakeIPRepo) FindReusable(address string) (models.IP, bool, error) {
	for _, ip := range f.ips {
		if ip.Address == address && ip.Status == models.StatusFree && ip.Type == models.IPTypePublic {
			return ip, true, nil
		}
	}
	return models.IP{}, false, nil
}

func (f *fakeIPRepo) ListSyncIPs() ([]models.IP, error) {
	var out []models.IP
	for _, ip := range f.ips {
		if ip.UsedToSync && ip.Status == models.StatusBound {
			out = append(out, ip)
		}
	}
	return out, nil
}

func (f *fakeIPRepo) DetachByHost(hostID string) error {
	for uuid, ip := range f.ips {
		if ip.Host != hostID {
			continue
		}
		ip.Host = ""
		ip.Status = models.StatusFree
		ip.UsedToSync = false
		f.ips[uuid] = ip
	}
	return nil
}

type fakeMetricRepo struct {
	repo.InterMetricRepo
	metrics []models.Metric
}

func (f *fakeMetricRepo) ListAll() ([]models.Metric, error) {
	return f.metrics, nil
}

type fakeMonitorDataRepo struct {
	repo.InterMonitorDataRepo
	points []models.MonitorData
}

func (f *fakeMonitorDataRepo) BulkCreate(points []models.MonitorData) error {
	f.points = append(f.points, points...)
	return nil
}

// fakeTransport 可编程的执行通道，记录每次执行收到的环境变量
type fakeTransport struct {
	unreachable map[string]bool
	stdout      string

	mu      sync.Mutex
	seenVar []map[string]string
}

func (t *fakeTransport) Ping(ctx context.Context, addr string, creds executor.Credentials) error {
	if t.unreachable[addr] {
		return fmt.Errorf("connection refused")
	}
	return nil
}

func (t *fakeTransport) Run(ctx context.Context, addr string, creds executor.Credentials, script string, vars map[string]string) (string, string, int, error) {
	if t.unreachable[addr] {
		return "", "", -1, fmt.Errorf("connection refused")
	}
	t.mu.Lock()
	t.seenVar = append(t.seenVar, vars)
	t.mu.Unlock()
	return t.stdout, "", 0, nil
}

const testPubKey = "ssh-rsa AAAAB3test root@cmdb"

func writeScripts(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"init.sh", "facts.sh", "monitor.sh"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), 0o755))
	}
	keyFile := filepath.Join(dir, "id_rsa")
	require.NoError(t, os.WriteFile(keyFile, []byte("fake-private-key"), 0o600))
	require.NoError(t, os.WriteFile(keyFile+".pub", []byte(testPubKey+"\n"), 0o644))
	global.Config.Ansible.ScriptDir = dir
	global.Config.Ansible.InitPlaybook = "init.sh"
	global.Config.Ansible.FactPlaybook = "facts.sh"
	global.Config.Ansible.MonitorPlaybook = "monitor.sh"
	global.Config.Ansible.KeyFile = keyFile
}

func newTestHostService(entry *fakeEntry, transport executor.Transport) *hostService {
	runner := executor.NewRunner(transport, 10, 5*time.Second)
	return &hostService{
		ctx:    ctx.NewContext(context.Background(), entry),
		runner: runner,
	}
}

func TestDeriveDisksDeterministic(t *testing.T) {
	devices := map[string]deviceFacts{}
	vda := deviceFacts{Size: "500 GB"}
	vda.Links.IDs = []string{"virtio-111"}
	vda.Partitions = map[string]struct {
		UUID string `mapstructure:"uuid"`
	}{
		"vda2": {UUID: "bbb"},
		"vda1": {UUID: "aaa"},
	}
	devices["vda"] = vda

	first := deriveDisks(devices, "idc-1")
	second := deriveDisks(devices, "idc-1")
	require.Len(t, first, 1, "应派生出一块磁盘")
	assert.Equal(t, first[0].UUID, second[0].UUID, "同一设备两次派生的身份应一致")
	assert.Equal(t, tools.Md5Hash("aaabbbvirtio-111"), first[0].UUID, "身份应为分区UUID与链接ID拼接后的MD5")
	assert.Equal(t, 500, first[0].Size, "容量应取数字前缀")
	assert.Equal(t, models.StatusBound, first[0].Status)
}

func TestDeriveDisksSkipsEmptyIdentity(t *testing.T) {
	devices := map[string]deviceFacts{
		"vdb":     {Size: "100 GB"},
		"nvme0n1": {Size: "200 GB"},
	}
	disks := deriveDisks(devices, "idc-1")
	assert.Empty(t, disks, "无身份来源的设备与非 vd/sd 设备都应跳过")
}

func TestDeriveIPsPrimaryLast(t *testing.T) {
	req := &types.RequestHostCreate{IP: "6.6.6.6", Bandwidth: 100, ParentIP: "9.9.9.9"}
	ips := deriveIPs(req, "host-1", []string{"10.0.0.1", "6.6.6.6", "10.0.0.1", "10.0.0.2"})

	require.Len(t, ips, 3, "去重后应剩三条")
	assert.Equal(t, "6.6.6.6", ips[len(ips)-1].Address, "主IP应固定在末位")
	assert.True(t, ips[len(ips)-1].UsedToSync, "末位地址应承担监控同步")
	assert.Equal(t, models.IPTypePublic, ips[len(ips)-1].Type)
	for _, ip := range ips[:len(ips)-1] {
		assert.False(t, ip.UsedToSync, "非末位地址不应带同步标记")
		assert.Equal(t, models.IPTypePrivate, ip.Type)
	}
	for _, ip := range ips {
		assert.Equal(t, "host-1", ip.Host)
		assert.Equal(t, models.StatusBound, ip.Status)
	}
}

func TestCommitIPsReusesFreedPublicIP(t *testing.T) {
	entry := newFakeEntry()
	freed := models.IP{
		ResourceBase: models.ResourceBase{UUID: "old-uuid"},
		Address:      "6.6.6.6",
		Type:         models.IPTypePublic,
		Status:       models.StatusFree,
	}
	entry.ip.ips[freed.UUID] = freed

	s := newTestHostService(entry, &fakeTransport{})
	ips := deriveIPs(&types.RequestHostCreate{IP: "6.6.6.6"}, "host-1", nil)
	require.NoError(t, s.commitIPs(entry, ips))

	require.Len(t, entry.ip.ips, 1, "应复用旧记录而不是新建")
	got := entry.ip.ips["old-uuid"]
	assert.Equal(t, "host-1", got.Host)
	assert.Equal(t, models.StatusBound, got.Status)
	assert.True(t, got.UsedToSync)
}

func TestHostServiceCreate(t *testing.T) {
	writeScripts(t)

	factsJSON := `{
		"cores": 8,
		"cpu": [8, "GenuineIntel", "Intel(R) Xeon(R) Platinum 8255C"],
		"ram": 16384,
		"release": "CentOS Linux 7",
		"ip": ["10.0.0.5"],
		"disk": {
			"vda": {
				"size": "500 GB",
				"links": {"ids": ["virtio-111"]},
				"partitions": {"vda1": {"uuid": "aaa"}}
			}
		}
	}`
	entry := newFakeEntry()
	s := newTestHostService(entry, &fakeTransport{stdout: factsJSON})

	host, err := s.Create(&types.RequestHostCreate{
		Name:     "web-1",
		Username: "root",
		Password: "pass",
		SSHPort:  22,
		IP:       "6.6.6.6",
		Project:  "p1",
		IDC:      "idc-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 8, host.CPU)
	assert.Equal(t, "Intel(R) Xeon(R) Platinum 8255C", host.Model)
	assert.Equal(t, 16384, host.Memory)
	assert.Equal(t, "CentOS Linux 7", host.OS)

	require.Len(t, entry.host.hosts, 1, "主机应已入库")
	require.Len(t, entry.disk.disks, 1, "磁盘应已入库")
	diskID := tools.Md5Hash("aaavirtio-111")
	assert.Equal(t, []string{host.UUID}, entry.disk.joins[diskID], "磁盘应挂载到新主机")

	var syncCount int
	for _, ip := range entry.ip.ips {
		if ip.UsedToSync {
			syncCount++
			assert.Equal(t, "6.6.6.6", ip.Address, "同步地址应为主IP")
		}
	}
	assert.Equal(t, 1, syncCount, "同一主机只能有一条同步地址")
}

func TestHostServiceCreateInjectsPubkey(t *testing.T) {
	writeScripts(t)

	entry := newFakeEntry()
	transport := &fakeTransport{stdout: `{"cores": 1, "cpu": [], "ram": 1024, "release": "CentOS", "ip": [], "disk": {}}`}
	s := newTestHostService(entry, transport)

	_, err := s.Create(&types.RequestHostCreate{
		Name:     "web-1",
		Username: "root",
		Password: "pass",
		SSHPort:  22,
		IP:       "6.6.6.6",
	})
	require.NoError(t, err)

	require.NotEmpty(t, transport.seenVar, "初始化脚本应已执行")
	assert.Equal(t, testPubKey, transport.seenVar[0]["pubkey"], "初始化应注入控制端公钥内容")
}

func TestHostServiceCreateMissingPubkeyFile(t *testing.T) {
	writeScripts(t)
	require.NoError(t, os.Remove(global.Config.Ansible.KeyFile+".pub"))

	entry := newFakeEntry()
	transport := &fakeTransport{}
	s := newTestHostService(entry, transport)

	_, err := s.Create(&types.RequestHostCreate{
		Name:     "web-1",
		Username: "root",
		Password: "pass",
		SSHPort:  22,
		IP:       "6.6.6.6",
	})
	var pErr *ProvisioningError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "init", pErr.Phase, "公钥缺失应在初始化阶段报错")
	assert.Empty(t, transport.seenVar, "公钥缺失时不应触达目标机")
}

func TestHostServiceCreateUnreachable(t *testing.T) {
	writeScripts(t)

	entry := newFakeEntry()
	s := newTestHostService(entry, &fakeTransport{unreachable: map[string]bool{"6.6.6.6:22": true}})

	_, err := s.Create(&types.RequestHostCreate{
		Name:     "web-1",
		Username: "root",
		Password: "pass",
		SSHPort:  22,
		IP:       "6.6.6.6",
	})
	var pErr *ProvisioningError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "init", pErr.Phase, "初始化阶段失败")
	assert.Empty(t, entry.host.hosts, "失败时不应写入任何数据")
	assert.Empty(t, entry.ip.ips)
}

func TestHostServiceUpdateRejectsImmutableFields(t *testing.T) {
	entry := newFakeEntry()
	entry.host.hosts["h1"] = models.Host{
		ManagedBase: models.ManagedBase{ResourceBase: models.ResourceBase{UUID: "h1"}},
		Name:        "web-1",
	}
	s := newTestHostService(entry, &fakeTransport{})

	err := s.Update(&types.RequestHostUpdate{UUID: "h1", Bandwidth: 200})
	require.Error(t, err, "修改带宽应被拒绝")

	err = s.Update(&types.RequestHostUpdate{UUID: "h1", IP: "1.2.3.4"})
	require.Error(t, err, "修改IP应被拒绝")
}

func TestHostServiceTeardown(t *testing.T) {
	entry := newFakeEntry()
	entry.host.hosts["h1"] = models.Host{
		ManagedBase: models.ManagedBase{ResourceBase: models.ResourceBase{UUID: "h1"}},
	}
	// d1 仅挂在 h1，d2 与 h2 共享
	entry.disk.disks["d1"] = models.Disk{ResourceBase: models.ResourceBase{UUID: "d1"}, Status: models.StatusBound}
	entry.disk.disks["d2"] = models.Disk{ResourceBase: models.ResourceBase{UUID: "d2"}, Status: models.StatusBound}
	entry.disk.joins["d1"] = []string{"h1"}
	entry.disk.joins["d2"] = []string{"h1", "h2"}
	entry.ip.ips["ip1"] = models.IP{
		ResourceBase: models.ResourceBase{UUID: "ip1"},
		Address:      "6.6.6.6",
		Host:         "h1",
		Status:       models.StatusBound,
		UsedToSync:   true,
	}

	s := newTestHostService(entry, &fakeTransport{})
	require.NoError(t, s.Delete("h1"))

	assert.Empty(t, entry.host.hosts, "主机记录应删除")
	assert.Equal(t, models.StatusFree, entry.disk.disks["d1"].Status, "独占盘应置空闲")
	assert.Equal(t, models.StatusBound, entry.disk.disks["d2"].Status, "共享盘应保持挂载状态")
	assert.Equal(t, []string{"h2"}, entry.disk.joins["d2"], "共享盘与其他主机的关联应保留")

	got := entry.ip.ips["ip1"]
	assert.Equal(t, "", got.Host, "IP应解绑主机")
	assert.Equal(t, models.StatusFree, got.Status)
	assert.False(t, got.UsedToSync, "解绑后同步标记应摘除")
}

func TestHostServiceCreateTaskFailure(t *testing.T) {
	writeScripts(t)

	entry := newFakeEntry()
	transport := &failingTransport{stderr: "permission denied"}
	s := newTestHostService(entry, transport)

	_, err := s.Create(&types.RequestHostCreate{
		Name:     "web-1",
		Username: "root",
		Password: "bad",
		SSHPort:  22,
		IP:       "6.6.6.6",
	})
	var pErr *ProvisioningError
	require.ErrorAs(t, err, &pErr)
	assert.Empty(t, entry.host.hosts, "脚本失败时不应写入任何数据")
}

// failingTransport 连接正常但脚本以非零退出
type failingTransport struct {
	stderr string
}

func (t *failingTransport) Ping(ctx context.Context, addr string, creds executor.Credentials) error {
	return nil
}

func (t *failingTransport) Run(ctx context.Context, addr string, creds executor.Credentials, script string, vars map[string]string) (string, string, int, error) {
	return "", t.stderr, 1, nil
}
