package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.TransactionRecorded("income")
	m.TransactionRecorded("income")
	m.TransactionRecorded("expense")
	m.WarningRaised(WarningOverspend)
	m.ValidationFailed("add_income")
	m.CommandHandled("stats")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transactions.WithLabelValues("income")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transactions.WithLabelValues("expense")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.warnings.WithLabelValues(WarningOverspend)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.warnings.WithLabelValues(WarningBudgetExceeded)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.validationFailures.WithLabelValues("add_income")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commands.WithLabelValues("stats")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.TransactionRecorded("expense")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `pocketledger_transactions_total{kind="expense"} 1`))
}

func TestNopSatisfiesRecorder(t *testing.T) {
	var r Recorder = Nop{}
	r.TransactionRecorded("income")
	r.WarningRaised(WarningNotFound)
	r.ValidationFailed("set_budget")
	r.CommandHandled("help")
}
