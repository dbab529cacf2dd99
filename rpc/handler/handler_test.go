// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler_test

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net"
	"net/http"
	"net/http/httptest"
	"net/rpc"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/tellit/address"
	"github.com/bitmark-inc/tellit/counter"
	"github.com/bitmark-inc/tellit/fixtures"
	"github.com/bitmark-inc/tellit/rpc/handler"
	"github.com/bitmark-inc/tellit/rpc/node"
)

const (
	notAllowed      = "method not allowed"
	tooManyRequests = "Too Many Requests"
)

type eResp struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

type jResp struct {
	ID     int         `json:"id"`
	Result int         `json:"result"`
	Error  interface{} `json:"error"`
}

type jReq struct {
	ID     int      `json:"id"`
	Method string   `json:"method"`
	Params []AddArg `json:"params"`
}

type Add struct{}
type AddArg struct {
	A int `json:"A"`
	B int `json:"B"`
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

type testLedger struct{}

func (testLedger) Chain() string            { return "testing" }
func (testLedger) Program() address.Address { return address.Address{1, 2, 3} }
func (testLedger) Sequence() uint64         { return 42 }

func newHandler(maximumConnections uint64) handler.Handler {
	s := rpc.NewServer()
	_ = s.Register(Add{})

	var c counter.Counter
	n := node.New(logger.New(fixtures.LogCategory), testLedger{}, time.Now(), "1.0", &c)

	return handler.New(logger.New(fixtures.LogCategory), s, n, maximumConnections)
}

func allowAll(h handler.Handler, names ...string) {
	allow := make(map[string][]*net.IPNet)
	_, ipNet, _ := net.ParseCIDR("192.0.2.1/32")
	for _, name := range names {
		allow[name] = []*net.IPNet{ipNet}
	}
	h.SetAllow(allow)
}

func TestRoot(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(5)

	req := httptest.NewRequest("GET", "http://not.found", nil)
	w := httptest.NewRecorder()
	h.Root(w, req)

	resp := w.Result()
	var j eResp
	_ = json.NewDecoder(resp.Body).Decode(&j)

	assert.Equal(t, "not found", j.Error, "wrong response")
	assert.Equal(t, http.StatusNotFound, j.Code, "wrong http code")
}

func TestRPC(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(5)

	add := AddArg{
		A: 1,
		B: 2,
	}

	arg := jReq{
		ID:     5,
		Method: "Add.Add",
		Params: []AddArg{add},
	}
	data, _ := json.Marshal(arg)

	req := httptest.NewRequest("POST", "http://not.exist", bytes.NewReader(data))
	w := httptest.NewRecorder()
	h.RPC(w, req)

	resp := w.Result()
	var j jResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status code")
	assert.Equal(t, add.A+add.B, j.Result, "wrong result")
	assert.Nil(t, j.Error, "wrong error")
}

func TestRPCWhenWrongHTTPMethod(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(5)

	req := httptest.NewRequest("GET", "http://not.exist", nil)
	w := httptest.NewRecorder()
	h.RPC(w, req)

	resp := w.Result()
	var j eResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, notAllowed, j.Error, "wrong method")
}

func TestRPCWhenTooManyConnections(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(0)

	req := httptest.NewRequest("POST", "http://not.exist", nil)
	w := httptest.NewRecorder()
	h.RPC(w, req)

	resp := w.Result()
	var j eResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, tooManyRequests, j.Error, "wrong error")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode, "wrong status code")
}

func TestRPCWhenServeError(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(5)

	arg := jReq{}
	data, _ := json.Marshal(arg)

	req := httptest.NewRequest("POST", "http://not.exist", bytes.NewReader(data))
	w := httptest.NewRecorder()
	h.RPC(w, req)

	resp := w.Result()
	b, _ := ioutil.ReadAll(resp.Body)
	assert.Contains(t, string(b), "internal server error", "wrong response")
}

func TestDetails(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(5)
	allowAll(h, "details")

	req := httptest.NewRequest("GET", "http://test.com", nil)
	w := httptest.NewRecorder()
	h.Details(w, req)

	resp := w.Result()
	var reply node.InfoReply
	err := json.NewDecoder(resp.Body).Decode(&reply)
	assert.Nil(t, err, "decode")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status code")
	assert.Equal(t, "testing", reply.Chain, "wrong chain")
	assert.Equal(t, uint64(42), reply.Sequence, "wrong sequence")
	assert.Equal(t, "1.0", reply.Version, "wrong version")
}

func TestDetailsWhenWrongHTTPMethod(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(5)
	allowAll(h, "details")

	req := httptest.NewRequest("POST", "http://not.exist", nil)
	w := httptest.NewRecorder()
	h.Details(w, req)

	resp := w.Result()
	var j eResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, notAllowed, j.Error, "wrong method")
}

func TestDetailsWhenNotAllow(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(5)
	allowAll(h, "metrics")

	req := httptest.NewRequest("GET", "http://test.com", nil)
	w := httptest.NewRecorder()
	h.Details(w, req)

	resp := w.Result()
	var j eResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, "forbidden", j.Error, "wrong not allow")
}

func TestDetailsWhenTooManyConnections(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(0)
	allowAll(h, "details")

	req := httptest.NewRequest("GET", "http://not.exist", nil)
	w := httptest.NewRecorder()
	h.Details(w, req)

	resp := w.Result()
	var j eResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, tooManyRequests, j.Error, "wrong error")
}

func TestMetrics(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(5)
	allowAll(h, "details", "metrics")

	// one details request so the Node.Info counter exists
	h.Details(httptest.NewRecorder(), httptest.NewRequest("GET", "http://test.com", nil))

	req := httptest.NewRequest("GET", "http://test.com/metrics", nil)
	w := httptest.NewRecorder()
	h.Metrics(w, req)

	resp := w.Result()
	b, _ := ioutil.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status code")
	assert.Contains(t, string(b), `tellitd_rpc_requests_total{method="Node.Info",result="ok"}`, "missing counter")
}

func TestMetricsWhenNotAllow(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := newHandler(5)

	req := httptest.NewRequest("GET", "http://test.com/metrics", nil)
	w := httptest.NewRecorder()
	h.Metrics(w, req)

	resp := w.Result()
	var j eResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, "forbidden", j.Error, "wrong not allow")
}
