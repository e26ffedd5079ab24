package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushOrder_Accepted(t *testing.T) {
	var gotAuth string
	var gotBody WireOrder

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/order", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(Response{Status: "success", Data: "FKT/2025/091"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-123", time.Second)
	resp, err := c.PushOrder(context.Background(), WireOrder{
		OrderID:   "01ABC",
		LocalCode: "258A01-001",
		Items:     []WireOrderItem{{NoUrut: 1, ItemCode: "SKU-1", LineTotal: 106875}},
	})
	require.NoError(t, err)

	assert.True(t, resp.Accepted())
	assert.Equal(t, "FKT/2025/091", resp.Data)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "01ABC", gotBody.OrderID)
	require.Len(t, gotBody.Items, 1)
}

func TestPushCheckIn_ApplicationRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 2xx transport, failure-flagged body.
		json.NewEncoder(w).Encode(Response{Status: "error", Message: "customer unknown"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	resp, err := c.PushCheckIn(context.Background(), WireCheckIn{CheckInID: "01DEF"})
	require.NoError(t, err, "an application rejection is not a transport error")

	assert.False(t, resp.Accepted())
	assert.Equal(t, "customer unknown", resp.Message)
}

func TestPush_Non2xxIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	_, err := c.PushCustomerLocation(context.Background(), LocationUpdate{CustomerID: "C-1"})

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Code)
	assert.Contains(t, se.Error(), "boom")
}

func TestPullItems_UnwrapsData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/barang", r.URL.Path)
		w.Write([]byte(`{"status":"success","data":[
			{"id":"B-1","code":"SKU-1","name":"Kopi Sachet","conversion":12,"unit_price":1500},
			{"id":"B-2","code":"SKU-2","name":"Teh Botol","conversion":24,"unit_price":3000}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	items, err := c.PullItems(context.Background())
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "SKU-1", items[0].Code)
	assert.Equal(t, 12, items[0].Conversion)
}

func TestPull_RejectedBodyIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":"token expired"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	_, err := c.PullCustomers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestPush_ContextCancelled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := NewClient(srv.URL, "", time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.PushOrder(ctx, WireOrder{OrderID: "01ABC"})
	assert.Error(t, err)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/salesperson", r.URL.Path)
		w.Write([]byte(`{"status":"success","data":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "", time.Second)
	people, err := c.PullSalesPersons(context.Background())
	require.NoError(t, err)
	assert.Empty(t, people)
}
