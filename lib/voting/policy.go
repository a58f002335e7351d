package voting

import (
	"io/ioutil"

	yaml "gopkg.in/yaml.v2"
)

// Policy bounds proposal creation. Durations and the delay are in logical
// ticks.
type Policy struct {
	OffchainDataLimit uint64 `yaml:"offchain_data_limit"`
	AccountListLimit  uint64 `yaml:"account_list_limit"`
	MinimumDuration   uint64 `yaml:"minimum_duration"`
	MaximumDuration   uint64 `yaml:"maximum_duration"`
	DelayLimit        uint64 `yaml:"delay_limit"`
}

func DefaultPolicy() Policy {
	return Policy{
		OffchainDataLimit: 150,
		AccountListLimit:  1000,
		MinimumDuration:   100,
		MaximumDuration:   1000,
		DelayLimit:        100,
	}
}

// NewPolicyFromFile loads a YAML policy file; absent fields keep their
// defaults.
func NewPolicyFromFile(path string) (policy Policy, err error) {
	policy = DefaultPolicy()

	var b []byte
	if b, err = ioutil.ReadFile(path); err != nil {
		return
	}

	err = yaml.Unmarshal(b, &policy)

	return
}
