package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

type testPayload struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// TestStore_NilClient verifies that a store without Redis degrades to
// "always miss, never store" instead of failing.
func TestStore_NilClient(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)

	var out testPayload
	if s.GetJSON(context.Background(), "any:key", &out) {
		t.Error("expected miss with nil client")
	}
	// Must not panic.
	s.SetJSON(context.Background(), "any:key", testPayload{Symbol: "AAPL"}, time.Minute)
}

// TestStore_GetJSON_Hit verifies that a stored value round-trips on a hit.
func TestStore_GetJSON_Hit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	want := testPayload{Symbol: "AAPL", Price: 191.5}
	b, _ := json.Marshal(want)
	mock.ExpectGet("quotes:delayed_sip:AAPL").SetVal(string(b))

	s := NewStore(rdb)

	var got testPayload
	if !s.GetJSON(context.Background(), "quotes:delayed_sip:AAPL", &got) {
		t.Fatal("expected cache hit")
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestStore_GetJSON_Miss verifies that a missing key is reported as a miss.
func TestStore_GetJSON_Miss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("chart:1Hour:24:delayed_sip:TSLA").RedisNil()

	s := NewStore(rdb)

	var got testPayload
	if s.GetJSON(context.Background(), "chart:1Hour:24:delayed_sip:TSLA", &got) {
		t.Error("expected miss for absent key")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestStore_GetJSON_ReadError verifies that a Redis read failure is swallowed
// and reported as a miss, never surfaced to the caller.
func TestStore_GetJSON_ReadError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("alpaca:assets:us_equity_active").SetErr(context.DeadlineExceeded)

	s := NewStore(rdb)

	var got []testPayload
	if s.GetJSON(context.Background(), "alpaca:assets:us_equity_active", &got) {
		t.Error("expected miss on read error")
	}
}

// TestStore_GetJSON_Corrupt verifies that a corrupt payload is treated as a
// miss and deleted.
func TestStore_GetJSON_Corrupt(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("quotes:delayed_sip:AAPL").SetVal("not json")
	mock.ExpectDel("quotes:delayed_sip:AAPL").SetVal(1)

	s := NewStore(rdb)

	var got testPayload
	if s.GetJSON(context.Background(), "quotes:delayed_sip:AAPL", &got) {
		t.Error("expected miss for corrupt payload")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestStore_SetJSON verifies that values are written with the exact TTL the
// caller requested; expiry itself is Redis behavior.
func TestStore_SetJSON(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	v := testPayload{Symbol: "MSFT", Price: 430.25}
	b, _ := json.Marshal(v)
	mock.ExpectSet("quotes:delayed_sip:MSFT", b, 20*time.Second).SetVal("OK")

	s := NewStore(rdb)
	s.SetJSON(context.Background(), "quotes:delayed_sip:MSFT", v, 20*time.Second)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestStore_SetJSON_WriteError verifies that a write failure is swallowed.
func TestStore_SetJSON_WriteError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	v := testPayload{Symbol: "MSFT"}
	b, _ := json.Marshal(v)
	mock.ExpectSet("quotes:delayed_sip:MSFT", b, time.Minute).SetErr(context.DeadlineExceeded)

	s := NewStore(rdb)
	// Must not panic or surface the error.
	s.SetJSON(context.Background(), "quotes:delayed_sip:MSFT", v, time.Minute)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}
