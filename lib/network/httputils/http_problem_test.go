package httputils

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"quadvote.io/quadvote/lib/errors"
)

func TestProblem(t *testing.T) {
	router := mux.NewRouter()

	statusProblem := NewStatusProblem(http.StatusBadRequest)
	detailedStatusProblem := NewDetailedStatusProblem(http.StatusBadRequest, "parameters are not enough")
	errorProblem := NewErrorProblem(errors.ProposalDoesNotExist, 404)

	router.HandleFunc("/problem_status_default", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, 400, statusProblem)
	})

	router.HandleFunc("/problem_status_with_detail", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, 400, detailedStatusProblem.SetInstance("https://quadvote.io/httperror/details/1"))
	})

	router.HandleFunc("/problem_with_error", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, 404, errorProblem)
	})

	ts := httptest.NewServer(router)
	defer ts.Close()

	// problem_status_default
	{
		resp, err := http.Get(ts.URL + "/problem_status_default")
		require.NoError(t, err)
		defer resp.Body.Close()
		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(readByte, &m))
		require.Equal(t, statusProblem.Type, m["type"])
		require.Equal(t, statusProblem.Title, m["title"])
		require.Equal(t, float64(statusProblem.Status), m["status"])
		require.Empty(t, m["detail"])
		require.Empty(t, m["instance"])
	}

	// problem_status_with_detail
	{
		resp, err := http.Get(ts.URL + "/problem_status_with_detail")
		require.NoError(t, err)
		defer resp.Body.Close()
		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(readByte, &m))
		require.Equal(t, detailedStatusProblem.Detail, m["detail"])
		require.Equal(t, "https://quadvote.io/httperror/details/1", m["instance"])
	}

	// problem_with_error
	{
		resp, err := http.Get(ts.URL + "/problem_with_error")
		require.NoError(t, err)
		defer resp.Body.Close()
		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(readByte, &m))
		require.Equal(t, errors.ProposalDoesNotExist.Message, m["title"])
		require.Equal(t, float64(404), m["status"])
	}
}

func TestStatusCode(t *testing.T) {
	require.Equal(t, 404, StatusCode(errors.ProposalDoesNotExist))
	require.Equal(t, 403, StatusCode(errors.NoPermission))
	require.Equal(t, 400, StatusCode(errors.IdenticalVote))
	require.Equal(t, 500, StatusCode(http.ErrServerClosed))
}
