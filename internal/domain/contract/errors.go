package contract

import "errors"

var (
	ErrContractNotFound       = errors.New("contract not found")
	ErrNoRunningContract      = errors.New("employee has no running contract")
	ErrMissingSalaryStructure = errors.New("contract has no salary structure assigned")
)
