package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"

	"quadvote.io/quadvote/lib/common"
	"quadvote.io/quadvote/lib/network/httputils"
	"quadvote.io/quadvote/lib/storage"
	"quadvote.io/quadvote/lib/voting"
)

var log logging.Logger = logging.New("module", "api")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLogging(log, level, handler)
}

const APIVersionV1 = "v1"

// API endpoint patterns
const (
	GetProposalsHandlerPattern     = "/proposals"
	GetProposalHandlerPattern      = "/proposals/{id}"
	GetProposalVotesHandlerPattern = "/proposals/{id}/votes"
	GetVoterVotesHandlerPattern    = "/votes/{address}"
	GetVoterHandlerPattern         = "/voters/{address}"
	GetAccountHandlerPattern       = "/accounts/{address}"
	GetNodeInfoPattern             = "/"
	PostSubscribePattern           = "/subscribe"
)

// NetworkHandlerAPI serves the read-only HTTP surface over the engine's
// storage. Mutations go through the engine, never through here.
type NetworkHandlerAPI struct {
	storage   *storage.LevelDBBackend
	urlPrefix string
	version   string
	nodeInfo  NodeInfo
}

func NewNetworkHandlerAPI(st *storage.LevelDBBackend, urlPrefix string, nodeInfo NodeInfo) *NetworkHandlerAPI {
	return &NetworkHandlerAPI{
		storage:   st,
		urlPrefix: urlPrefix,
		version:   APIVersionV1,
		nodeInfo:  nodeInfo,
	}
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}

// NodeInfo describes the running node for the root endpoint.
type NodeInfo struct {
	Version  string        `json:"version"`
	Started  string        `json:"started"`
	Storage  string        `json:"storage"`
	Endpoint string        `json:"endpoint"`
	Policy   voting.Policy `json:"policy"`
}

func (api NetworkHandlerAPI) GetNodeInfoHandler(w http.ResponseWriter, r *http.Request) {
	httputils.MustWriteJSON(w, 200, api.nodeInfo)
}

// AddAPIHandlers registers every read endpoint on the router. `wrap` is
// applied to each handler, letting the caller splice in response caching.
func (api NetworkHandlerAPI) AddAPIHandlers(router *mux.Router, wrap func(http.HandlerFunc) http.HandlerFunc) {
	if wrap == nil {
		wrap = func(h http.HandlerFunc) http.HandlerFunc { return h }
	}

	router.HandleFunc(api.HandlerURLPattern(GetProposalsHandlerPattern), wrap(api.GetProposalsHandler)).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetProposalHandlerPattern), wrap(api.GetProposalHandler)).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetProposalVotesHandlerPattern), wrap(api.GetProposalVotesHandler)).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetVoterVotesHandlerPattern), wrap(api.GetVoterVotesHandler)).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetVoterHandlerPattern), wrap(api.GetVoterHandler)).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(GetAccountHandlerPattern), wrap(api.GetAccountHandler)).Methods("GET")
	router.HandleFunc(api.HandlerURLPattern(PostSubscribePattern), api.PostSubscribeHandler).Methods("POST")
	router.HandleFunc(GetNodeInfoPattern, api.GetNodeInfoHandler).Methods("GET")
}
