package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveIngest(t *testing.T) {
	m := New()
	m.ObserveIngest("push", "stored")
	m.ObserveIngest("push", "stored")
	m.ObserveIngest("push", "rejected_signature")

	require.Equal(t, 2.0, testutil.ToFloat64(m.ingestTotal.WithLabelValues("push", "stored")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ingestTotal.WithLabelValues("push", "rejected_signature")))
}

func TestHandlerExposesStoreSize(t *testing.T) {
	m := New()
	m.TrackStoreSize(func() float64 { return 42 })
	m.ObserveIngest("issues", "stored")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "repo_pulse_event_store_size 42")
	require.Contains(t, string(body), `repo_pulse_webhook_ingest_total{event_type="issues",outcome="stored"} 1`)
}
