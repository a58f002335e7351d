package resource

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/require"

	"quadvote.io/quadvote/lib/common"
	"quadvote.io/quadvote/lib/ledger"
	"quadvote.io/quadvote/lib/voting"
)

func TestProposalResource(t *testing.T) {
	kp, _ := keypair.Random()
	p := voting.NewProposal(voting.ProposalId(3), []byte("bafybeib"), voting.KindPublic, kp.Address(), nil, 10, 200)
	p.AddRatio(true, common.Amount(9))

	j, err := json.Marshal(NewProposal(p).Resource())
	require.Nil(t, err)

	var f interface{}
	require.Nil(t, json.Unmarshal(j, &f))
	m := f.(map[string]interface{})

	require.Equal(t, float64(3), m["id"])
	require.Equal(t, "bafybeib", m["offchain_data"])
	require.Equal(t, "public", m["kind"])
	require.Equal(t, kp.Address(), m["creator"])
	require.Equal(t, float64(9), m["aye"])
	require.Equal(t, float64(9), m["total"])

	l := m["_links"].(map[string]interface{})
	require.Equal(t, "/v1/proposals/3", l["self"].(map[string]interface{})["href"])
}

func TestVoteResource(t *testing.T) {
	kp, _ := keypair.Random()
	v := voting.NewVoteInfo(kp.Address(), voting.ProposalId(1), true, common.Amount(4))

	j, err := json.Marshal(NewVote(v).Resource())
	require.Nil(t, err)

	var f interface{}
	require.Nil(t, json.Unmarshal(j, &f))
	m := f.(map[string]interface{})

	require.Equal(t, kp.Address(), m["voter"])
	require.Equal(t, float64(1), m["proposal_id"])
	require.Equal(t, true, m["aye"])
	require.Equal(t, float64(4), m["power"])
	require.Equal(t, float64(16), m["cost"])

	l := m["_links"].(map[string]interface{})
	require.Equal(t, "/v1/proposals/1", l["proposal"].(map[string]interface{})["href"])
}

func TestAccountResource(t *testing.T) {
	kp, _ := keypair.Random()
	a := ledger.NewAccount(kp.Address(), common.Amount(100))
	a.Held = common.Amount(25)

	j, err := json.Marshal(NewAccount(a).Resource())
	require.Nil(t, err)

	var f interface{}
	require.Nil(t, json.Unmarshal(j, &f))
	m := f.(map[string]interface{})

	require.Equal(t, float64(100), m["balance"])
	require.Equal(t, float64(25), m["held"])
	require.Equal(t, float64(75), m["spendable"])

	l := m["_links"].(map[string]interface{})
	require.Equal(t, strings.Replace(URLAccount, "{address}", kp.Address(), -1), l["self"].(map[string]interface{})["href"])
}

func TestResourceList(t *testing.T) {
	kp, _ := keypair.Random()
	var rs []APIResource
	for i := 0; i < 2; i++ {
		rs = append(rs, NewVote(voting.NewVoteInfo(kp.Address(), voting.ProposalId(uint32(i)), true, common.Amount(1))))
	}

	list := NewResourceList(rs, "/v1/proposals/0/votes", "", "/v1/proposals/0/votes?cursor=abc")
	j, err := json.Marshal(list.Resource())
	require.Nil(t, err)

	var f interface{}
	require.Nil(t, json.Unmarshal(j, &f))
	m := f.(map[string]interface{})

	embedded := m["_embedded"].(map[string]interface{})
	records := embedded["records"].([]interface{})
	require.Equal(t, 2, len(records))

	l := m["_links"].(map[string]interface{})
	require.Equal(t, "/v1/proposals/0/votes?cursor=abc", l["next"].(map[string]interface{})["href"])
	_, hasPrev := l["prev"]
	require.False(t, hasPrev)
}
