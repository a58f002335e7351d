package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"quadvote.io/quadvote/lib/common/observer"
	"quadvote.io/quadvote/lib/errors"
	"quadvote.io/quadvote/lib/network/api/resource"
	"quadvote.io/quadvote/lib/network/httputils"
	"quadvote.io/quadvote/lib/storage"
	"quadvote.io/quadvote/lib/voting"
)

func parseProposalId(r *http.Request) (voting.ProposalId, error) {
	vars := mux.Vars(r)
	n, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		return 0, errors.BadRequestParameter
	}
	return voting.ProposalId(n), nil
}

func (api NetworkHandlerAPI) GetProposalsHandler(w http.ResponseWriter, r *http.Request) {
	options, err := storage.NewDefaultListOptionsFromQuery(r.URL.Query())
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}

	var cursor []byte
	readFunc := func() []resource.APIResource {
		var rs []resource.APIResource
		iterFunc, closeFunc := voting.GetProposalsByCreated(api.storage, options)
		for {
			p, hasNext, c := iterFunc()
			if !hasNext {
				break
			}
			cursor = c
			rs = append(rs, resource.NewProposal(p))
		}
		closeFunc()
		return rs
	}

	if httputils.IsEventStream(r) {
		event := observer.NewEvent(observer.ResourceProposal, observer.ConditionAll, "")
		es := NewDefaultEventStream(w, r)
		iterFunc, closeFunc := voting.GetProposalsByCreated(api.storage, options)
		for {
			p, hasNext, _ := iterFunc()
			if !hasNext {
				break
			}
			es.Render(p)
		}
		closeFunc()
		es.Run(observer.VotingObserver, event.String())
		return
	}

	rs := readFunc()
	self := resource.URLProposals + options.Encode()
	list := resource.NewResourceList(rs, self, "", nextPageLink(resource.URLProposals, options, len(rs), cursor))

	httputils.MustWriteJSON(w, 200, list)
}

func (api NetworkHandlerAPI) GetProposalHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseProposalId(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	p, err := voting.GetProposal(api.storage, id)
	if err != nil {
		if err == errors.StorageRecordDoesNotExist {
			err = errors.ProposalDoesNotExist
		}
		httputils.WriteJSONError(w, err)
		return
	}

	if httputils.IsEventStream(r) {
		event := observer.NewEvent(observer.ResourceProposal, observer.ConditionID, id.String())
		es := NewDefaultEventStream(w, r)
		es.Render(p)
		es.Run(observer.VotingObserver, event.String())
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewProposal(p))
}

func (api NetworkHandlerAPI) GetProposalVotesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseProposalId(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	exists, err := voting.ExistProposal(api.storage, id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	if !exists {
		httputils.WriteJSONError(w, errors.ProposalDoesNotExist)
		return
	}

	options, err := storage.NewDefaultListOptionsFromQuery(r.URL.Query())
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}

	var cursor []byte
	var rs []resource.APIResource
	iterFunc, closeFunc := voting.GetVotesByProposal(api.storage, id, options)
	for {
		v, hasNext, c := iterFunc()
		if !hasNext {
			break
		}
		cursor = c
		rs = append(rs, resource.NewVote(v))
	}
	closeFunc()

	self := api.proposalVotesURL(id) + options.Encode()
	list := resource.NewResourceList(rs, self, "", nextPageLink(api.proposalVotesURL(id), options, len(rs), cursor))

	httputils.MustWriteJSON(w, 200, list)
}

func (api NetworkHandlerAPI) proposalVotesURL(id voting.ProposalId) string {
	return resource.APIVersionV1 + "/proposals/" + id.String() + "/votes"
}

// nextPageLink builds the next link when a full page was returned, advancing
// the cursor to the last key the iterator yielded.
func nextPageLink(base string, options storage.ListOptions, count int, cursor []byte) string {
	if options.Limit() == 0 || uint64(count) < options.Limit() || len(cursor) == 0 {
		return ""
	}
	return base + options.SetCursor(cursor).Encode()
}
