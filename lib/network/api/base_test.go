package api

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stellar/go/keypair"
	"github.com/stretchr/testify/require"

	"quadvote.io/quadvote/lib/common"
	"quadvote.io/quadvote/lib/ledger"
	"quadvote.io/quadvote/lib/storage"
	"quadvote.io/quadvote/lib/voting"
)

func prepareAPIServer(t *testing.T) (*httptest.Server, *storage.LevelDBBackend, *voting.Engine, *voting.ManualClock) {
	st, err := storage.NewTestMemoryLevelDBBackend()
	require.Nil(t, err)

	clock := voting.NewManualClock(0)
	engine := voting.NewEngine(st, ledger.NewLevelDBLedger(), clock, voting.DefaultPolicy())

	apiHandler := NewNetworkHandlerAPI(st, "", NodeInfo{Version: "test"})
	router := mux.NewRouter()
	apiHandler.AddAPIHandlers(router, nil)

	return httptest.NewServer(router), st, engine, clock
}

func prepareVoter(t *testing.T, engine *voting.Engine, st *storage.LevelDBBackend, balance common.Amount) string {
	kp, _ := keypair.Random()
	require.Nil(t, ledger.NewAccount(kp.Address(), balance).Save(st))
	require.Nil(t, engine.RegisterVoter(voting.RootOrigin(), kp.Address()))
	return kp.Address()
}

func request(t *testing.T, ts *httptest.Server, path string) (int, []byte) {
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, body
}
