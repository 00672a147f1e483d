package main

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/coin"
	"github.com/iov-one/bridge/errors"
	"github.com/iov-one/bridge/ledger"
	"github.com/iov-one/bridge/x/lockbox"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/libs/log"
)

// maxTxSize limits the body of a submitted transaction.
const maxTxSize = 64 << 10

type server struct {
	l      *ledger.Ledger
	logger log.Logger
}

// newRouter returns the HTTP API of the node.
func newRouter(l *ledger.Ledger, gatherer prometheus.Gatherer, logger log.Logger) http.Handler {
	s := &server{l: l, logger: logger}

	r := chi.NewRouter()
	r.Post("/tx", s.submitTx)
	r.Get("/deposits/{id}", s.deposit)
	r.Get("/withdraws/{id}", s.withdraw)
	r.Get("/withdraws/{id}/secret", s.withdrawSecret)
	r.Get("/liquidity/{asset}/{provider}", s.liquidity)
	r.Get("/pools/{asset}", s.pool)
	r.Get("/swaplimit/{asset}", s.swapLimit)
	r.Get("/managers/{address}", s.manager)
	r.Get("/config", s.config)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}

type txResponse struct {
	Data bridge.HexBytes `json:"data,omitempty"`
	Log  string          `json:"log,omitempty"`
}

func (s *server) submitTx(w http.ResponseWriter, r *http.Request) {
	raw, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxTxSize))
	if err != nil {
		s.writeErr(w, errors.Wrapf(errors.ErrInput, "read body: %s", err))
		return
	}
	res, err := s.l.DeliverRaw(raw)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txResponse{Data: res.Data, Log: res.Log})
}

func (s *server) deposit(w http.ResponseWriter, r *http.Request) {
	s.lockBox(w, r, lockbox.Querier.CheckDeposit)
}

func (s *server) withdraw(w http.ResponseWriter, r *http.Request) {
	s.lockBox(w, r, lockbox.Querier.CheckWithdraw)
}

func (s *server) lockBox(w http.ResponseWriter, r *http.Request, load func(lockbox.Querier, bridge.ReadOnlyKVStore, []byte) (*lockbox.LockBox, error)) {
	id, err := bridge.ParseHexBytes(chi.URLParam(r, "id"))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	var box *lockbox.LockBox
	err = s.l.View(func(db bridge.ReadOnlyKVStore) error {
		var err error
		box, err = load(s.l.Querier(), db, id)
		return err
	})
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, box)
}

func (s *server) withdrawSecret(w http.ResponseWriter, r *http.Request) {
	id, err := bridge.ParseHexBytes(chi.URLParam(r, "id"))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	var secret bridge.HexBytes
	err = s.l.View(func(db bridge.ReadOnlyKVStore) error {
		var err error
		secret, err = s.l.Querier().CheckSecretKeyWithdraw(db, id)
		return err
	})
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Secret bridge.HexBytes `json:"secret"`
	}{secret})
}

func (s *server) liquidity(w http.ResponseWriter, r *http.Request) {
	asset, err := bridge.ParseHexBytes(chi.URLParam(r, "asset"))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	provider, err := bridge.ParseAddress(chi.URLParam(r, "provider"))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	var amount coin.Amount
	err = s.l.View(func(db bridge.ReadOnlyKVStore) error {
		var err error
		amount, err = s.l.Querier().BalanceOfLiquidity(db, asset, provider)
		return err
	})
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Provider bridge.Address `json:"provider"`
		Amount   coin.Amount    `json:"amount"`
	}{provider, amount})
}

type poolResponse struct {
	AssetID  bridge.HexBytes `json:"asset_id"`
	Ticker   string          `json:"ticker"`
	Holdings coin.Amount     `json:"holdings"`
	Reserved coin.Amount     `json:"reserved"`
	Free     coin.Amount     `json:"free"`
}

func (s *server) pool(w http.ResponseWriter, r *http.Request) {
	assetID, err := bridge.ParseHexBytes(chi.URLParam(r, "asset"))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	resp := poolResponse{AssetID: assetID}
	err = s.l.View(func(db bridge.ReadOnlyKVStore) error {
		q := s.l.Querier()
		asset, err := q.Asset(db, assetID)
		if err != nil {
			return err
		}
		resp.Ticker = asset.Ticker
		if resp.Holdings, err = q.Holdings(db, assetID); err != nil {
			return err
		}
		if resp.Reserved, err = q.Reserved(db, assetID); err != nil {
			return err
		}
		resp.Free, err = q.FreeLiquidity(db, assetID)
		return err
	})
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type swapLimitResponse struct {
	Enabled   bool        `json:"enabled"`
	DailyCap  coin.Amount `json:"daily_cap"`
	Swapped   coin.Amount `json:"swapped_today"`
	Swappable coin.Amount `json:"swappable_today"`
}

func (s *server) swapLimit(w http.ResponseWriter, r *http.Request) {
	assetID, err := bridge.ParseHexBytes(chi.URLParam(r, "asset"))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	var resp swapLimitResponse
	err = s.l.View(func(db bridge.ReadOnlyKVStore) error {
		q := s.l.Querier()
		limit, err := q.SwapLimit(db, assetID)
		if err != nil {
			return err
		}
		resp.Enabled = limit.Enabled
		resp.DailyCap = limit.DailyCap
		resp.Swapped = limit.SwappedToday
		resp.Swappable, err = q.GetTodaySwappableAmount(db, assetID)
		return err
	})
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) manager(w http.ResponseWriter, r *http.Request) {
	addr, err := bridge.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	var isManager, isOwner bool
	err = s.l.View(func(db bridge.ReadOnlyKVStore) error {
		var err error
		if isManager, err = s.l.Querier().IsManager(db, addr); err != nil {
			return err
		}
		isOwner, err = s.l.Querier().IsOwner(db, addr)
		return err
	})
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Address bridge.Address `json:"address"`
		Manager bool           `json:"manager"`
		Owner   bool           `json:"owner"`
	}{addr, isManager, isOwner})
}

func (s *server) config(w http.ResponseWriter, r *http.Request) {
	var conf *lockbox.Configuration
	err := s.l.View(func(db bridge.ReadOnlyKVStore) error {
		var err error
		conf, err = s.l.Querier().Configuration(db)
		return err
	})
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conf)
}

type errorResponse struct {
	Code  uint32 `json:"code"`
	Error string `json:"error"`
}

// writeErr responds with the code of the error. Errors without a code are
// redacted.
func (s *server) writeErr(w http.ResponseWriter, err error) {
	code, msg := errors.Info(err, false)
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Error: msg})
}

func statusOf(err error) int {
	switch {
	case errors.ErrNotFound.Is(err):
		return http.StatusNotFound
	case errors.ErrUnauthorized.Is(err):
		return http.StatusForbidden
	case errors.ErrInput.Is(err), errors.ErrMsg.Is(err), errors.ErrType.Is(err), errors.ErrEmpty.Is(err):
		return http.StatusBadRequest
	case errors.ErrPanic.Is(err), errors.ErrDatabase.Is(err), errors.ErrHuman.Is(err):
		return http.StatusInternalServerError
	}
	// Errors without a registered kind are internal.
	if _, msg := errors.Info(err, false); msg == "internal error" {
		return http.StatusInternalServerError
	}
	return http.StatusConflict
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
