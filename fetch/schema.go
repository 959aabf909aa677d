package fetch

import "encoding/json"

// Solana JSON-RPC envelope.
type rpcRequest struct {
	Jsonrpc string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcEnvelope struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// getBalance result. Required fields are pointers so a missing field is
// distinguishable from a zero value.
type balanceResult struct {
	Value *uint64 `json:"value"`
}

// One entry of the getRecentPerformanceSamples result array.
type perfSample struct {
	Slot             *uint64 `json:"slot"`
	NumTransactions  *uint64 `json:"numTransactions"`
	SamplePeriodSecs *uint64 `json:"samplePeriodSecs"`
}

// CoinGecko simple-price document: {"solana":{"usd":123.45}}.
type priceDoc struct {
	Solana *struct {
		USD *float64 `json:"usd"`
	} `json:"solana"`
}
