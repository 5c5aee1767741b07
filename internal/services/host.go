package services

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"cmdb/internal/ctx"
	"cmdb/internal/global"
	"cmdb/internal/models"
	"cmdb/internal/repo"
	"cmdb/internal/types"
	"cmdb/pkg/executor"
	"cmdb/pkg/facts"
	"cmdb/pkg/tools"

	"github.com/mitchellh/mapstructure"
	"github.com/zeromicro/go-zero/core/logc"
	"go.uber.org/multierr"
)

type hostService struct {
	ctx    *ctx.Context
	runner *executor.Runner
}

type InterHostService interface {
	// Create 纳管主机：远端初始化、事实采集、派生磁盘与IP后在单事务内入库
	Create(req *types.RequestHostCreate) (models.Host, error)
	// Update 更新主机属性，改密码会重跑一次远端初始化；ip/parentIp/bandwidth 不可改
	Update(req *types.RequestHostUpdate) error
	// Delete 下线主机，解绑磁盘与IP后删除记录
	Delete(uuid string) error
	Get(uuid string) (types.ResponseHostDetail, error)
	List(req *types.RequestHostQuery) (types.ResponseHostList, error)
}

func newInterHostService(ctx *ctx.Context, runner *executor.Runner) InterHostService {
	return &hostService{
		ctx:    ctx,
		runner: runner,
	}
}

// hostFacts 采集脚本输出的事实结构
type hostFacts struct {
	Cores   int                    `mapstructure:"cores"`
	CPU     []interface{}          `mapstructure:"cpu"`
	RAM     int                    `mapstructure:"ram"`
	Release string                 `mapstructure:"release"`
	IP      []string               `mapstructure:"ip"`
	Disk    map[string]deviceFacts `mapstructure:"disk"`
}

type deviceFacts struct {
	Size  string `mapstructure:"size"`
	Links struct {
		IDs []string `mapstructure:"ids"`
	} `mapstructure:"links"`
	Partitions map[string]struct {
		UUID string `mapstructure:"uuid"`
	} `mapstructure:"partitions"`
}

func (s *hostService) Create(req *types.RequestHostCreate) (models.Host, error) {
	pubkey, err := controllerPubKey()
	if err != nil {
		return models.Host{}, &ProvisioningError{Phase: "init", Host: req.IP, Err: err}
	}

	addr := net.JoinHostPort(req.IP, strconv.Itoa(req.SSHPort))
	extraVars := map[string]string{
		"user":     req.Username,
		"password": req.Password,
		"server":   req.IP,
		"sshport":  strconv.Itoa(req.SSHPort),
		"pubkey":   pubkey,
	}
	creds := executor.Credentials{User: req.Username, Password: req.Password}

	// 初始化：下发本机公钥，后续采集与监控同步走密钥认证
	if err := s.runPhase(addr, global.Config.Ansible.InitPlaybook, extraVars, creds); err != nil {
		return models.Host{}, &ProvisioningError{Phase: "init", Host: req.IP, Err: err}
	}

	raw, err := s.collectFacts(addr, req.IP, extraVars, creds)
	if err != nil {
		return models.Host{}, &ProvisioningError{Phase: "collect", Host: req.IP, Err: err}
	}

	var hf hostFacts
	if err := decodeFacts(raw, &hf); err != nil {
		return models.Host{}, &ProvisioningError{Phase: "collect", Host: req.IP, Err: err}
	}

	hostUUID := tools.GenerateUUID()
	host := s.buildHost(hostUUID, req, hf)
	disks := deriveDisks(hf.Disk, req.IDC)
	ips := deriveIPs(req, hostUUID, hf.IP)

	err = s.ctx.DB.Tx(func(tx repo.Entry) error {
		if err := tx.Host().Create(host); err != nil {
			return err
		}
		for _, d := range disks {
			if err := tx.Disk().Create(d); err != nil {
				// 共享盘（LVM/集群盘）在别的主机纳管时已入库，挂载即可
				var dup *repo.DuplicateResourceError
				if !errors.As(err, &dup) {
					return err
				}
			}
			if err := tx.Disk().AttachHost(d.UUID, hostUUID); err != nil {
				return err
			}
		}
		return s.commitIPs(tx, ips)
	})
	if err != nil {
		return models.Host{}, &ProvisioningError{Phase: "commit", Host: req.IP, Err: err}
	}

	logc.Infof(s.ctx.Ctx, "主机纳管完成, name: %s, uuid: %s, 磁盘: %d, IP: %d",
		host.Name, hostUUID, len(disks), len(ips))
	return host, nil
}

// controllerPubKey 读取控制端公钥内容，初始化阶段写入目标机 authorized_keys
func controllerPubKey() (string, error) {
	path := global.Config.Ansible.KeyFile + ".pub"
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("读取控制端公钥失败, path: %s, err: %w", path, err)
	}
	return strings.TrimSpace(string(content)), nil
}

// runPhase 对单台主机执行一个脚本并校验结果
func (s *hostService) runPhase(addr, playbook string, vars map[string]string, creds executor.Credentials) error {
	artifact := filepath.Join(global.Config.Ansible.ScriptDir, playbook)
	collector, err := s.runner.Execute(s.ctx.Ctx, []string{addr}, []string{artifact}, vars, creds)
	if err != nil {
		return err
	}
	_, err = facts.Normalize(collector)
	return err
}

// collectFacts 采集并归一化事实，结果按主机IP索引
func (s *hostService) collectFacts(addr, ip string, vars map[string]string, creds executor.Credentials) (map[string]interface{}, error) {
	artifact := filepath.Join(global.Config.Ansible.ScriptDir, global.Config.Ansible.FactPlaybook)
	collector, err := s.runner.Execute(s.ctx.Ctx, []string{addr}, []string{artifact}, vars, creds)
	if err != nil {
		return nil, err
	}
	normalized, err := facts.Normalize(collector)
	if err != nil {
		return nil, err
	}
	raw, ok := normalized[ip]
	if !ok {
		return nil, fmt.Errorf("采集结果中没有 %s 的事实数据", ip)
	}
	return raw, nil
}

func (s *hostService) buildHost(uuid string, req *types.RequestHostCreate, hf hostFacts) models.Host {
	// cpu 事实为型号描述列表，第三个元素是型号字符串
	var model string
	if len(hf.CPU) >= 3 {
		model = fmt.Sprint(hf.CPU[2])
	}
	return models.Host{
		ManagedBase: models.ManagedBase{
			ResourceBase: models.ResourceBase{UUID: uuid},
		},
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		SSHPort:  req.SSHPort,
		Type:     req.Type,
		CPU:      hf.Cores,
		Model:    model,
		Memory:   hf.RAM,
		OS:       hf.Release,
		Project:  req.Project,
		IDC:      req.IDC,
	}
}

// deriveDisks 从设备事实派生磁盘记录
// 磁盘身份取分区UUID与设备链接ID拼接后的MD5，分区名排序保证同一块盘
// 在任何主机上都会算出同一身份；身份源为空的设备跳过
func deriveDisks(devices map[string]deviceFacts, idc string) []models.Disk {
	names := make([]string, 0, len(devices))
	for name := range devices {
		if strings.HasPrefix(name, "vd") || strings.HasPrefix(name, "sd") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var disks []models.Disk
	for _, name := range names {
		dev := devices[name]
		parts := make([]string, 0, len(dev.Partitions))
		for p := range dev.Partitions {
			parts = append(parts, p)
		}
		sort.Strings(parts)

		var identity strings.Builder
		for _, p := range parts {
			identity.WriteString(dev.Partitions[p].UUID)
		}
		identity.WriteString(strings.Join(dev.Links.IDs, ""))
		uuid := tools.Md5Hash(identity.String())
		if uuid == "" {
			continue
		}
		disks = append(disks, models.Disk{
			ResourceBase: models.ResourceBase{UUID: uuid},
			Partition:    name,
			Size:         tools.LeadingInt(dev.Size),
			Status:       models.StatusBound,
			IDC:          idc,
		})
	}
	return disks
}

// deriveIPs 合并探测到的地址与用户填的主IP
// 去重保留首次出现顺序，主IP固定放到末位，末位地址承担监控同步
func deriveIPs(req *types.RequestHostCreate, hostUUID string, collected []string) []models.IP {
	seen := map[string]bool{req.IP: true}
	ordered := make([]string, 0, len(collected)+1)
	for _, addr := range collected {
		if seen[addr] {
			continue
		}
		seen[addr] = true
		ordered = append(ordered, addr)
	}
	ordered = append(ordered, req.IP)

	ips := make([]models.IP, 0, len(ordered))
	for i, addr := range ordered {
		ipType := models.IPTypePublic
		if tools.IsPrivateAddress(addr) {
			ipType = models.IPTypePrivate
		}
		ips = append(ips, models.IP{
			ResourceBase: models.ResourceBase{UUID: tools.GenerateUUID()},
			Address:      addr,
			Type:         ipType,
			Bandwidth:    req.Bandwidth,
			Status:       models.StatusBound,
			UsedToSync:   i == len(ordered)-1,
			IDC:          req.IDC,
			Parent:       req.ParentIP,
			Host:         hostUUID,
		})
	}
	return ips
}

// commitIPs 入库IP记录，同步地址优先复活曾经解绑的同地址外网IP
func (s *hostService) commitIPs(tx repo.Entry, ips []models.IP) error {
	for _, ip := range ips {
		if ip.UsedToSync {
			freed, ok, err := tx.IP().FindReusable(ip.Address)
			if err != nil {
				return err
			}
			if ok {
				freed.Host = ip.Host
				freed.Status = models.StatusBound
				freed.UsedToSync = true
				if err := tx.IP().Update(freed); err != nil {
					return err
				}
				continue
			}
		}
		if err := tx.IP().Create(ip); err != nil {
			return err
		}
	}
	return nil
}

func (s *hostService) Update(req *types.RequestHostUpdate) error {
	host, err := s.ctx.DB.Host().Get(req.UUID)
	if err != nil {
		return err
	}

	if req.Password != "" {
		if req.IP == "" || req.Username == "" || req.SSHPort == 0 {
			return fmt.Errorf("修改密码需同时提供 ip/username/sshPort")
		}
		pubkey, err := controllerPubKey()
		if err != nil {
			return &ProvisioningError{Phase: "init", Host: req.IP, Err: err}
		}
		addr := net.JoinHostPort(req.IP, strconv.Itoa(req.SSHPort))
		extraVars := map[string]string{
			"user":     req.Username,
			"password": req.Password,
			"server":   req.IP,
			"sshport":  strconv.Itoa(req.SSHPort),
			"pubkey":   pubkey,
		}
		creds := executor.Credentials{User: req.Username, Password: req.Password}
		// 防止首次纳管时密码录错导致后续无法远端执行，改密码重跑一次初始化
		if err := s.runPhase(addr, global.Config.Ansible.InitPlaybook, extraVars, creds); err != nil {
			return &ProvisioningError{Phase: "init", Host: req.IP, Err: err}
		}
		host.Password = req.Password
	} else if req.IP != "" || req.ParentIP != "" || req.Bandwidth != 0 {
		return fmt.Errorf("ip/parentIp/bandwidth 不允许通过本接口修改")
	}

	if req.Name != "" {
		host.Name = req.Name
	}
	if req.Username != "" {
		host.Username = req.Username
	}
	if req.SSHPort != 0 {
		host.SSHPort = req.SSHPort
	}
	if req.Type != 0 {
		host.Type = req.Type
	}
	if req.Project != "" {
		host.Project = req.Project
	}
	if req.IDC != "" {
		host.IDC = req.IDC
	}
	return s.ctx.DB.Host().Update(host)
}

func (s *hostService) Delete(uuid string) error {
	var errs error

	diskIDs, err := s.ctx.DB.Disk().DiskIDsByHost(uuid)
	if err != nil {
		errs = multierr.Append(errs, err)
	}
	if err := s.ctx.DB.Disk().DetachByHost(uuid); err != nil {
		errs = multierr.Append(errs, err)
	}
	// 磁盘记录保留（共享盘可能还挂在别的主机上），无主的置空闲
	if err := s.ctx.DB.Disk().FreeOrphans(diskIDs); err != nil {
		errs = multierr.Append(errs, err)
	}
	if err := s.ctx.DB.IP().DetachByHost(uuid); err != nil {
		errs = multierr.Append(errs, err)
	}
	if err := s.ctx.DB.Host().Delete(uuid); err != nil {
		errs = multierr.Append(errs, err)
	}

	if errs != nil {
		logc.Errorf(s.ctx.Ctx, "主机下线存在失败项, uuid: %s, err: %s", uuid, errs.Error())
	}
	return errs
}

func (s *hostService) Get(uuid string) (types.ResponseHostDetail, error) {
	host, err := s.ctx.DB.Host().Get(uuid)
	if err != nil {
		return types.ResponseHostDetail{}, err
	}

	ips, err := s.ctx.DB.IP().ListByHost(uuid)
	if err != nil {
		return types.ResponseHostDetail{}, err
	}

	diskIDs, err := s.ctx.DB.Disk().DiskIDsByHost(uuid)
	if err != nil {
		return types.ResponseHostDetail{}, err
	}
	disks := make([]models.Disk, 0, len(diskIDs))
	for _, id := range diskIDs {
		disk, err := s.ctx.DB.Disk().Get(id)
		if err != nil {
			logc.Errorf(s.ctx.Ctx, "查询磁盘失败, uuid: %s, err: %s", id, err.Error())
			continue
		}
		disks = append(disks, disk)
	}

	return types.ResponseHostDetail{Host: host, IPs: ips, Disks: disks}, nil
}

func (s *hostService) List(req *types.RequestHostQuery) (types.ResponseHostList, error) {
	list, total, err := s.ctx.DB.Host().List(req.Query, req.Project, req.IDC, req.Page)
	if err != nil {
		return types.ResponseHostList{}, err
	}
	return types.ResponseHostList{List: list, Total: total}, nil
}

// decodeFacts 宽松解码事实字典，数值型字段容忍字符串表示
func decodeFacts(raw map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}
