package api

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	observable "github.com/GianlucaGuarini/go-observable"

	"quadvote.io/quadvote/lib/common/observer"
	"quadvote.io/quadvote/lib/errors"
	"quadvote.io/quadvote/lib/ledger"
	"quadvote.io/quadvote/lib/network/httputils"
	"quadvote.io/quadvote/lib/network/api/resource"
	"quadvote.io/quadvote/lib/voting"
)

// DefaultContentType is "application/json"
const DefaultContentType = "application/json"

// PostSubscribeHandler subscribes the caller to a set of observer events,
// given as a JSON array of `{resource, condition, id}` objects in the body.
func (api NetworkHandlerAPI) PostSubscribeHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	if !httputils.IsEventStream(r) {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}
	var requestParams []observer.Event
	if err := json.Unmarshal(body, &requestParams); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}

	// account events fire on the ledger observable, everything else on the
	// voting one
	var votingEvents, ledgerEvents []string
	for _, ev := range requestParams {
		if ev.Resource == observer.ResourceAccount {
			ledgerEvents = append(ledgerEvents, ev.String())
		} else {
			votingEvents = append(votingEvents, ev.String())
		}
	}

	renderFunc := func(args ...interface{}) ([]byte, error) {
		if len(args) <= 1 {
			return nil, fmt.Errorf("render: value is empty")
		}
		i := args[1]

		if i == nil {
			return []byte{}, nil
		}

		switch v := i.(type) {
		case *voting.Proposal:
			return json.Marshal(resource.NewProposal(v).Resource())
		case *voting.VoteInfo:
			return json.Marshal(resource.NewVote(v).Resource())
		case *ledger.Account:
			return json.Marshal(resource.NewAccount(v).Resource())
		}

		return json.Marshal(i)
	}

	// subscribe before the first flush so no event between the response
	// headers and the observer registration is lost
	es := NewEventStream(w, r, renderFunc, DefaultContentType)

	ob, primary, secondary := observer.VotingObserver, votingEvents, ledgerEvents
	if len(primary) < 1 {
		ob, primary, secondary = observer.LedgerObserver, ledgerEvents, nil
	}

	run := es.Start(ob, primary...)
	if len(secondary) > 0 {
		defer es.On(observer.LedgerObserver, secondary...)()
	}
	es.Render(nil)
	run()
}

// EventStream handles chunked responses of a observable trigger
//
// renderFunc uses on observable.On() and Render function
type EventStream struct {
	contentType string
	renderFunc  RenderFunc
	request     *http.Request
	writer      http.ResponseWriter
	flusher     http.Flusher
	err         error
	rendered    bool
	msg         chan []byte
	stop        chan struct{}
}

type RenderFunc func(args ...interface{}) ([]byte, error)

var RenderJSONFunc = func(args ...interface{}) ([]byte, error) {
	if len(args) <= 1 {
		return nil, fmt.Errorf("render: value is empty")
	}
	v := args[1]
	if v == nil {
		return nil, nil
	}
	bs, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bs, nil
}

// NewDefaultEventStream returns *EventStream with RenderJSONFunc and DefaultContentType
func NewDefaultEventStream(w http.ResponseWriter, r *http.Request) *EventStream {
	return NewEventStream(w, r, RenderJSONFunc, DefaultContentType)
}

// NewEventStream makes *EventStream and checks http.Flusher by type assertion.
func NewEventStream(w http.ResponseWriter, r *http.Request, renderFunc RenderFunc, ct string) *EventStream {
	es := &EventStream{
		request:     r,
		writer:      w,
		renderFunc:  renderFunc,
		contentType: ct,
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		es.err = fmt.Errorf("http: can't do chunked response")
	} else {
		es.flusher = flusher
	}

	return es
}

// Render make a chunked response by using RenderFunc and flush it.
func (s *EventStream) Render(args ...interface{}) {
	if s.err != nil {
		return
	}

	var bs []byte
	var renderArgs []interface{}
	renderArgs = append(renderArgs, "pre")
	renderArgs = append(renderArgs, args...)
	if payload, err := s.renderFunc(renderArgs...); err != nil {
		bs = s.errMessage(err)
	} else {
		bs = payload
	}

	if !s.rendered {
		s.writer.Header().Set("Content-Type", s.contentType)
		s.rendered = true
	}

	fmt.Fprintf(s.writer, "%s\n", bs)
	s.flusher.Flush()
}

// Run start observing events.
//
// Simple use case:
//
//	event := observer.NewEvent(observer.ResourceProposal, observer.ConditionID, id.String())
//	es := NewDefaultEventStream(w, r)
//	es.Render(p)
//	es.Run(observer.VotingObserver, event.String())
func (s *EventStream) Run(ob *observable.Observable, events ...string) {
	s.Start(ob, events...)()
}

// Start prepares for observing events and returns run func.
//
// In most case, Use Run instead of Start
func (s *EventStream) Start(ob *observable.Observable, events ...string) func() {
	if s.err != nil {
		http.Error(s.writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return func() {}
	}

	off := s.On(ob, events...)

	return func() {
		defer off()

		for {
			select {
			case payload := <-s.msg:
				fmt.Fprintf(s.writer, "%s\n", payload)
				s.flusher.Flush()
			case <-s.request.Context().Done():
				close(s.stop)
				return
			}
		}
	}
}

// On registers the stream on events of an observable, sharing the stream's
// message channel; the returned func unsubscribes.
func (s *EventStream) On(ob *observable.Observable, events ...string) func() {
	if s.err != nil {
		return func() {}
	}

	if s.msg == nil {
		s.msg = make(chan []byte)
		s.stop = make(chan struct{})
	}

	event := strings.Join(events, " ")
	onFunc := func(args ...interface{}) {
		var (
			payload []byte
			err     error
		)

		if len(args) > 1 {
			payload, err = s.renderFunc(args...)
		} else {
			var as []interface{}
			as = append(as, event)
			as = append(as, args...)
			payload, err = s.renderFunc(as...)
		}

		if err != nil {
			s.msg <- s.errMessage(err)
		}
		select {
		case s.msg <- payload:
		case <-s.stop:
			return
		}
	}
	ob.On(event, onFunc)

	return func() {
		ob.Off(event, onFunc)
	}
}

func (s *EventStream) Stop() {
	close(s.stop)
}

func (s *EventStream) errMessage(err error) []byte {
	p := httputils.NewErrorProblem(err, httputils.StatusCode(err))
	b, err := json.Marshal(p)
	if err != nil {
		b = []byte{}
	}
	return b
}
