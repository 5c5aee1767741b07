package types

import (
	"fmt"

	"cmdb/pkg/scheduler"
)

type RequestTaskTrigger struct {
	Kind string   `json:"kind" form:"kind"`
	Args []string `json:"args" form:"args"`
}

func (r *RequestTaskTrigger) ValidateParams() error {
	if r.Kind == "" {
		return fmt.Errorf("kind(任务类型)不可为空")
	}
	return nil
}

type RequestTaskRemove struct {
	ID string `json:"id" form:"id"`
}

type ResponseTaskList struct {
	List []scheduler.JobInfo `json:"list"`
}
