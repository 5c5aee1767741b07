package services

import "fmt"

// ProvisioningError 主机纳管流程失败
// Phase 标识失败环节（init/collect/commit），失败时不落任何数据
type ProvisioningError struct {
	Phase string
	Host  string
	Err   error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("主机纳管失败, 阶段: %s, 主机: %s, err: %v", e.Phase, e.Host, e.Err)
}

func (e *ProvisioningError) Unwrap() error {
	return e.Err
}
