// Package rpc is a minimal JSON-RPC 2.0 client for a bitcoind-style wallet,
// used to import migrated keys into a node.
package rpc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultURL is the testnet wallet RPC endpoint of a local node.
const DefaultURL = "http://127.0.0.1:18332"

// ErrEmptyResult is returned when a reply carries neither a result nor an
// error.
var ErrEmptyResult = errors.New("rpc reply has no result")

// Error is a JSON-RPC error object returned by the node.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// StatusError is returned when the node answers with a non-200 status and
// no JSON-RPC error body.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rpc http status %d: %s", e.StatusCode, e.Body)
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      uint64 `json:"id"`
}

type response struct {
	Result jsoniter.RawMessage `json:"result"`
	Error  *Error              `json:"error"`
	ID     uint64              `json:"id"`
}

// Client talks to one node with HTTP basic auth.
type Client struct {
	url      string
	user     string
	password string
	http     *http.Client
	nextID   atomic.Uint64
}

// New constructs a client. A nil httpClient means http.DefaultClient.
func New(url, user, password string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{url: url, user: user, password: password, http: httpClient}
}

// Call invokes method and decodes its result into result, which may be nil
// to discard it.
func (c *Client) Call(ctx context.Context, method string, result any, params ...any) error {
	if params == nil {
		params = []any{}
	}

	body, err := json.Marshal(request{JSONRPC: "2.0", Method: method, Params: params, ID: c.nextID.Add(1)})
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.user, c.password)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s reply: %w", method, err)
	}

	// bitcoind reports RPC errors with a 500 status and a JSON body.
	var reply response
	if err := json.Unmarshal(raw, &reply); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
		}
		return fmt.Errorf("decoding %s reply: %w", method, err)
	}

	if reply.Error != nil {
		return fmt.Errorf("%s: %w", method, reply.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if result == nil {
		return nil
	}
	if len(reply.Result) == 0 {
		return fmt.Errorf("%s: %w", method, ErrEmptyResult)
	}
	if err := json.Unmarshal(reply.Result, result); err != nil {
		return fmt.Errorf("decoding %s result: %w", method, err)
	}

	return nil
}

// ImportPrivKey adds a WIF private key to the node's wallet.
func (c *Client) ImportPrivKey(ctx context.Context, wif, label string, rescan bool) error {
	return c.Call(ctx, "importprivkey", nil, wif, label, rescan)
}

// Rescan asks the node to rescan the chain for wallet transactions.
func (c *Client) Rescan(ctx context.Context) error {
	return c.Call(ctx, "rescan", nil)
}
