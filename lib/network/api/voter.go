package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"quadvote.io/quadvote/lib/common/observer"
	"quadvote.io/quadvote/lib/errors"
	"quadvote.io/quadvote/lib/network/api/resource"
	"quadvote.io/quadvote/lib/network/httputils"
	"quadvote.io/quadvote/lib/storage"
	"quadvote.io/quadvote/lib/voting"
)

func (api NetworkHandlerAPI) GetVoterHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := vars["address"]

	exists, err := voting.ExistVoter(api.storage, address)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	if !exists {
		httputils.WriteJSONError(w, errors.VoterNotRegistered)
		return
	}

	if httputils.IsEventStream(r) {
		event := observer.NewEvent(observer.ResourceVoter, observer.ConditionAddress, address)
		es := NewDefaultEventStream(w, r)
		es.Render(address)
		es.Run(observer.VotingObserver, event.String())
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewVoter(address))
}

func (api NetworkHandlerAPI) GetVoterVotesHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := vars["address"]

	options, err := storage.NewDefaultListOptionsFromQuery(r.URL.Query())
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}

	if httputils.IsEventStream(r) {
		event := observer.NewEvent(observer.ResourceVote, observer.ConditionAddress, address)
		es := NewDefaultEventStream(w, r)
		iterFunc, closeFunc := voting.GetVotesByVoter(api.storage, address, options)
		for {
			v, hasNext, _ := iterFunc()
			if !hasNext {
				break
			}
			es.Render(v)
		}
		closeFunc()
		es.Run(observer.VotingObserver, event.String())
		return
	}

	var cursor []byte
	var rs []resource.APIResource
	iterFunc, closeFunc := voting.GetVotesByVoter(api.storage, address, options)
	for {
		v, hasNext, c := iterFunc()
		if !hasNext {
			break
		}
		cursor = c
		rs = append(rs, resource.NewVote(v))
	}
	closeFunc()

	base := resource.APIVersionV1 + "/votes/" + address
	self := base + options.Encode()
	list := resource.NewResourceList(rs, self, "", nextPageLink(base, options, len(rs), cursor))

	httputils.MustWriteJSON(w, 200, list)
}
