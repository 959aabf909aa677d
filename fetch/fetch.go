// Package fetch performs the per-cycle remote data retrieval: wallet balance
// and performance sample over Solana JSON-RPC, plus the SOL/USD price from a
// simple-price endpoint. Every failure is classified into a tagged outcome so
// the refresh loop can match exhaustively.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"solpanel/model"
)

// maxBodyBytes bounds response reads; the expected payloads are tiny and the
// device has little RAM to spare.
const maxBodyBytes = 16 * 1024

// Fetcher issues the HTTPS requests for one refresh cycle. It holds no
// mutable state between cycles; outcomes are returned by value.
type Fetcher struct {
	client   *http.Client
	rpcURL   string
	priceURL string
	wallet   string
	timeout  time.Duration
	now      func() time.Time
}

func New(rpcURL, priceURL, wallet string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		rpcURL:   rpcURL,
		priceURL: priceURL,
		wallet:   wallet,
		timeout:  timeout,
		now:      time.Now,
	}
}

// Fetch runs the three requests of one cycle and folds them into a single
// outcome. The first failure aborts the cycle; a partially populated
// snapshot is never produced.
func (f *Fetcher) Fetch(ctx context.Context) model.Outcome {
	balance, fail := f.fetchBalance(ctx)
	if fail != nil {
		return *fail
	}
	slot, tps, fail := f.fetchPerformance(ctx)
	if fail != nil {
		return *fail
	}
	price, fail := f.fetchPrice(ctx)
	if fail != nil {
		return *fail
	}

	return model.Success(model.Snapshot{
		PriceUSD:   price,
		BalanceSOL: float64(balance) / model.LamportsPerSOL,
		Slot:       slot,
		TPS:        tps,
		Address:    f.wallet,
		FetchedAt:  f.now(),
	})
}

func (f *Fetcher) fetchBalance(ctx context.Context) (uint64, *model.Outcome) {
	raw, fail := f.rpcCall(ctx, "getBalance", []any{f.wallet})
	if fail != nil {
		return 0, fail
	}
	var res balanceResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return 0, malformed("getBalance: " + err.Error())
	}
	if res.Value == nil {
		return 0, malformed("getBalance: missing result.value")
	}
	return *res.Value, nil
}

func (f *Fetcher) fetchPerformance(ctx context.Context) (slot, tps uint64, fail *model.Outcome) {
	raw, fail := f.rpcCall(ctx, "getRecentPerformanceSamples", []any{1})
	if fail != nil {
		return 0, 0, fail
	}
	var samples []perfSample
	if err := json.Unmarshal(raw, &samples); err != nil {
		return 0, 0, malformed("getRecentPerformanceSamples: " + err.Error())
	}
	if len(samples) == 0 {
		return 0, 0, malformed("getRecentPerformanceSamples: empty sample list")
	}
	s := samples[0]
	if s.Slot == nil || s.NumTransactions == nil {
		return 0, 0, malformed("getRecentPerformanceSamples: missing slot or numTransactions")
	}
	if *s.Slot == 0 {
		return 0, 0, malformed("getRecentPerformanceSamples: slot is zero")
	}
	period := uint64(60)
	if s.SamplePeriodSecs != nil && *s.SamplePeriodSecs > 0 {
		period = *s.SamplePeriodSecs
	}
	return *s.Slot, *s.NumTransactions / period, nil
}

func (f *Fetcher) fetchPrice(ctx context.Context) (float64, *model.Outcome) {
	var doc priceDoc
	if fail := f.getJSON(ctx, f.priceURL, &doc); fail != nil {
		return 0, fail
	}
	if doc.Solana == nil || doc.Solana.USD == nil {
		return 0, malformed("price: missing solana.usd")
	}
	price := *doc.Solana.USD
	if price <= 0 || price > 1e7 {
		return 0, malformed("price: implausible value " + strconv.FormatFloat(price, 'f', -1, 64))
	}
	return price, nil
}

// rpcCall posts one JSON-RPC request and returns the raw result field.
func (f *Fetcher) rpcCall(ctx context.Context, method string, params []any) (json.RawMessage, *model.Outcome) {
	body, err := json.Marshal(rpcRequest{Jsonrpc: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return nil, malformed(method + ": encode: " + err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.rpcURL, bytes.NewReader(body))
	if err != nil {
		return nil, malformed(method + ": " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	var env rpcEnvelope
	if fail := f.do(req, &env); fail != nil {
		return nil, fail
	}
	if env.Error != nil {
		return nil, malformed(method + ": rpc error " + strconv.Itoa(env.Error.Code) + ": " + env.Error.Message)
	}
	if len(env.Result) == 0 {
		return nil, malformed(method + ": missing result")
	}
	return env.Result, nil
}

func (f *Fetcher) getJSON(ctx context.Context, url string, out any) *model.Outcome {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return malformed(err.Error())
	}
	req.Header.Set("Accept", "application/json")
	return f.do(req, out)
}

func (f *Fetcher) do(req *http.Request, out any) *model.Outcome {
	resp, err := f.client.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return malformed("http status " + strconv.Itoa(resp.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return classifyTransport(err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return malformed("decode: " + err.Error())
	}
	return nil
}

// classifyTransport separates "no response in time" from "could not reach".
func classifyTransport(err error) *model.Outcome {
	if errors.Is(err, context.DeadlineExceeded) {
		return outcomePtr(model.Timeout())
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return outcomePtr(model.Timeout())
	}
	return outcomePtr(model.Unreachable())
}

func malformed(reason string) *model.Outcome {
	return outcomePtr(model.Malformed(reason))
}

func outcomePtr(o model.Outcome) *model.Outcome { return &o }
