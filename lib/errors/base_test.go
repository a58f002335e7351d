package errors

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorSerialize(t *testing.T) {
	b, err := NoPermission.Serialize()
	require.Nil(t, err)

	var decoded Error
	require.Nil(t, json.Unmarshal(b, &decoded))
	require.Equal(t, NoPermission.Code, decoded.Code)
	require.Equal(t, NoPermission.Message, decoded.Message)
}

func TestErrorSentinelComparison(t *testing.T) {
	var err error = ProposalDoesNotExist
	require.True(t, err == ProposalDoesNotExist)
	require.False(t, err == ClaimDoesNotExist)
}

func TestErrorCloneKeepsData(t *testing.T) {
	e := IdenticalVote.Clone().SetData("proposal_id", 1)
	require.Equal(t, IdenticalVote.Code, e.Code)
	require.Equal(t, 1, e.Data["proposal_id"])
	require.Empty(t, IdenticalVote.Data)
}
