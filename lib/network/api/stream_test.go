package api

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"quadvote.io/quadvote/lib/common"
	"quadvote.io/quadvote/lib/common/observer"
	"quadvote.io/quadvote/lib/voting"
)

func subscribe(t *testing.T, url string, events []observer.Event) io.ReadCloser {
	b, err := json.Marshal(events)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", url, bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	return resp.Body
}

func readEvent(t *testing.T, reader *bufio.Reader) map[string]interface{} {
	for {
		line, err := reader.ReadBytes('\n')
		require.NoError(t, err)
		line = bytes.Trim(line, "\n")
		if len(line) == 0 {
			continue
		}

		recv := make(map[string]interface{})
		require.NoError(t, json.Unmarshal(line, &recv))
		return recv
	}
}

func TestProposalStream(t *testing.T) {
	ts, st, engine, clock := prepareAPIServer(t)
	defer ts.Close()

	creator := prepareVoter(t, engine, st, common.Amount(1000))
	id, err := engine.CreateProposal(voting.SignedOrigin(creator), nil, voting.KindPublic, nil, 10, 200)
	require.Nil(t, err)

	events := []observer.Event{
		observer.NewEvent(observer.ResourceProposal, observer.ConditionID, id.String()),
	}
	body := subscribe(t, ts.URL+"/v1/subscribe", events)
	defer body.Close()
	reader := bufio.NewReader(body)

	clock.Set(10)
	require.Nil(t, engine.Vote(voting.SignedOrigin(creator), id, true, common.Amount(3)))

	recv := readEvent(t, reader)
	require.Equal(t, float64(id), recv["id"])
	require.Equal(t, float64(9), recv["aye"])
	require.Equal(t, float64(9), recv["total"])
}

func TestVoteStream(t *testing.T) {
	ts, st, engine, clock := prepareAPIServer(t)
	defer ts.Close()

	voter := prepareVoter(t, engine, st, common.Amount(1000))
	id, err := engine.CreateProposal(voting.SignedOrigin(voter), nil, voting.KindPublic, nil, 10, 200)
	require.Nil(t, err)

	events := []observer.Event{
		observer.NewEvent(observer.ResourceVote, observer.ConditionAddress, voter),
	}
	body := subscribe(t, ts.URL+"/v1/subscribe", events)
	defer body.Close()
	reader := bufio.NewReader(body)

	clock.Set(10)
	require.Nil(t, engine.Vote(voting.SignedOrigin(voter), id, true, common.Amount(2)))

	recv := readEvent(t, reader)
	require.Equal(t, voter, recv["voter"])
	require.Equal(t, float64(2), recv["power"])
	require.Equal(t, fmt.Sprintf("/v1/votes/%s", voter), recv["_links"].(map[string]interface{})["self"].(map[string]interface{})["href"])
}

// a single subscription may mix account resources, which fire on the ledger
// observable, with voting resources.
func TestAccountStream(t *testing.T) {
	ts, st, engine, clock := prepareAPIServer(t)
	defer ts.Close()

	voter := prepareVoter(t, engine, st, common.Amount(1000))
	id, err := engine.CreateProposal(voting.SignedOrigin(voter), nil, voting.KindPublic, nil, 10, 200)
	require.Nil(t, err)

	events := []observer.Event{
		observer.NewEvent(observer.ResourceAccount, observer.ConditionAddress, voter),
		observer.NewEvent(observer.ResourceProposal, observer.ConditionID, id.String()),
	}
	body := subscribe(t, ts.URL+"/v1/subscribe", events)
	defer body.Close()
	reader := bufio.NewReader(body)

	clock.Set(10)
	require.Nil(t, engine.Vote(voting.SignedOrigin(voter), id, true, common.Amount(3)))

	var sawAccount, sawProposal bool
	for i := 0; i < 2; i++ {
		recv := readEvent(t, reader)
		switch {
		case recv["address"] == voter:
			require.Equal(t, float64(9), recv["held"])
			sawAccount = true
		case recv["id"] == float64(id):
			require.Equal(t, float64(9), recv["total"])
			sawProposal = true
		}
	}
	require.True(t, sawAccount)
	require.True(t, sawProposal)
}
