package voting

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPolicyFromFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "policy")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "policy.yml")
	content := []byte("offchain_data_limit: 64\nminimum_duration: 10\n")
	require.Nil(t, ioutil.WriteFile(path, content, 0644))

	policy, err := NewPolicyFromFile(path)
	require.Nil(t, err)
	require.Equal(t, uint64(64), policy.OffchainDataLimit)
	require.Equal(t, uint64(10), policy.MinimumDuration)

	// unset fields keep their defaults
	require.Equal(t, DefaultPolicy().MaximumDuration, policy.MaximumDuration)
	require.Equal(t, DefaultPolicy().DelayLimit, policy.DelayLimit)
}

func TestNewPolicyFromFileMissing(t *testing.T) {
	_, err := NewPolicyFromFile("/does/not/exist.yml")
	require.NotNil(t, err)
}
