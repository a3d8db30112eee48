package network

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(ClientConfig{BaseURL: srv.URL})
}

func TestListUnspent(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/address/1BitcoinAddr/utxo", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"txid":"aa","vout":0,"value":100000,"status":{"confirmed":true}},
			{"txid":"bb","vout":2,"value":5000,"status":{"confirmed":false}}
		]`))
	}))

	utxos, err := c.ListUnspent(context.Background(), "1BitcoinAddr")
	require.NoError(t, err)
	require.Len(t, utxos, 2)
	assert.Equal(t, UTXO{TxID: "aa", Vout: 0, Value: 100_000, Confirmed: true}, utxos[0])
	assert.Equal(t, UTXO{TxID: "bb", Vout: 2, Value: 5000, Confirmed: false}, utxos[1])
}

func TestListUnspentBadJSON(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))

	_, err := c.ListUnspent(context.Background(), "x")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestRecommendedFees(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/fees/recommended", r.URL.Path)
		_, _ = w.Write([]byte(`{"fastestFee":25,"halfHourFee":15,"hourFee":8}`))
	}))

	tiers, err := c.RecommendedFees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(25), tiers.Fastest)
	assert.Equal(t, uint64(15), tiers.HalfHour)
	assert.Equal(t, uint64(8), tiers.Hour)

	rate, ok := tiers.Rate(TierHalfHour)
	assert.True(t, ok)
	assert.Equal(t, uint64(15), rate)

	_, ok = tiers.Rate("tomorrow")
	assert.False(t, ok)
}

func TestRawTxHex(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tx/abcd/hex", r.URL.Path)
		_, _ = w.Write([]byte("0100000001deadbeef\n"))
	}))

	raw, err := c.RawTxHex(context.Background(), "abcd")
	require.NoError(t, err)
	assert.Equal(t, "0100000001deadbeef", raw)
}

func TestRawTxHexNotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Transaction not found", http.StatusNotFound)
	}))

	_, err := c.RawTxHex(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTxNotFound)
}

func TestNotFoundOutsideTxEndpoints(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	// A 404 only means "transaction not found" on the /tx endpoint; for
	// other resources it is just a bad response.
	_, err := c.BestBlockHeight(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.NotErrorIs(t, err, ErrTxNotFound)

	_, err = c.ListUnspent(context.Background(), "1BitcoinAddr")
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.NotErrorIs(t, err, ErrTxNotFound)
}

func TestBroadcastTx(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tx", r.URL.Path)
		_, _ = w.Write([]byte("feedc0de"))
	}))

	txid, err := c.BroadcastTx(context.Background(), "0100000001")
	require.NoError(t, err)
	assert.Equal(t, "feedc0de", txid)
}

func TestBroadcastTxRejected(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"nested details", `{"error":{"details":"min relay fee not met"}}`, "min relay fee not met"},
		{"flat error", `{"error":"dust output"}`, "dust output"},
		{"raw body", "sendrawtransaction RPC error", "sendrawtransaction RPC error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tc.body))
			}))

			_, err := c.BroadcastTx(context.Background(), "0100000001")
			require.ErrorIs(t, err, ErrBroadcastRejected)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestBestBlockHeight(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/blocks/tip/height", r.URL.Path)
		_, _ = w.Write([]byte("835210\n"))
	}))

	height, err := c.BestBlockHeight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(835_210), height)
}

func TestGetServerError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"details":"backend down"}}`))
	}))

	_, err := c.BestBlockHeight(context.Background())
	require.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "backend down")
}

func TestConnectionFailed(t *testing.T) {
	c := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1"})

	_, err := c.BestBlockHeight(context.Background())
	assert.ErrorIs(t, err, ErrConnectionFailed)
}

func TestKnownTier(t *testing.T) {
	assert.True(t, KnownTier(TierFastest))
	assert.True(t, KnownTier(TierHalfHour))
	assert.True(t, KnownTier(TierHour))
	assert.False(t, KnownTier(""))
	assert.False(t, KnownTier("eventually"))
}
