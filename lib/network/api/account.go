package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"quadvote.io/quadvote/lib/common/observer"
	"quadvote.io/quadvote/lib/ledger"
	"quadvote.io/quadvote/lib/network/api/resource"
	"quadvote.io/quadvote/lib/network/httputils"
)

func (api NetworkHandlerAPI) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := vars["address"]

	a, err := ledger.GetAccount(api.storage, address)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	if httputils.IsEventStream(r) {
		event := observer.NewEvent(observer.ResourceAccount, observer.ConditionAddress, address)
		es := NewDefaultEventStream(w, r)
		es.Render(a)
		es.Run(observer.LedgerObserver, event.String())
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewAccount(a))
}
