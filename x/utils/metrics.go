package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed transactions and measures
// their processing time. Transactions are labeled with the call kind
// (check or deliver), the message path and the result code.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ bridge.Decorator = (*Metrics)(nil)

// NewMetrics creates a Metrics decorator and registers its collectors with
// given registerer. A nil registerer leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tx",
			Name:      "total",
			Help:      "Number of processed transactions.",
		}, []string{"call", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "tx",
			Name:      "duration_seconds",
			Help:      "Transaction processing time.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"call", "path"}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.txs, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrapf(errors.ErrState, "register collector: %s", err)
		}
	}
	return m, nil
}

// Check counts the call.
func (m *Metrics) Check(ctx bridge.Context, store bridge.KVStore, tx bridge.Tx, next bridge.Checker) (*bridge.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", tx, start, err)
	return res, err
}

// Deliver counts the call.
func (m *Metrics) Deliver(ctx bridge.Context, store bridge.KVStore, tx bridge.Tx, next bridge.Deliverer) (*bridge.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", tx, start, err)
	return res, err
}

func (m *Metrics) observe(call string, tx bridge.Tx, start time.Time, err error) {
	path := "(missing)"
	if tx != nil {
		path = bridge.GetPath(tx)
	}
	code, _ := errors.Info(err, false)
	m.txs.WithLabelValues(call, path, strconv.FormatUint(uint64(code), 10)).Inc()
	m.duration.WithLabelValues(call, path).Observe(time.Since(start).Seconds())
}
