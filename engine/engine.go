// Package engine exposes the q-series kernel as a table of builtins keyed by
// name and arity, with the truncation state and memo caches they share.
package engine

import (
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/tuneinsight/qseries/config"
	"github.com/tuneinsight/qseries/convert"
	"github.com/tuneinsight/qseries/logging"
	"github.com/tuneinsight/qseries/qfuncs"
	"github.com/tuneinsight/qseries/series"
)

var (
	// ErrUnknownBuiltin is returned when calling a name that is not in the table.
	ErrUnknownBuiltin = errors.New("unknown builtin")
	// ErrArity is returned when a builtin is called with an unsupported number of arguments.
	ErrArity = errors.New("wrong number of arguments")
	// ErrArgType is returned when an argument has the wrong type.
	ErrArgType = errors.New("wrong argument type")
)

// Engine evaluates builtin calls. It owns the active truncation, the
// canonical series q at that truncation, and the eta cache.
// An Engine is safe for concurrent use.
type Engine struct {
	mu           sync.RWMutex
	trunc        int
	q            series.Series
	displayTerms int

	cache *qfuncs.EtaCache
	conv  *convert.Converter
	log   *logging.Logger
}

// New returns an Engine configured by cfg. A nil cfg uses config.Default and a
// nil log discards diagnostics.
func New(cfg *config.Config, log *logging.Logger) *Engine {

	if cfg == nil {
		cfg = config.Default()
	}

	if log == nil {
		log = logging.NewNop()
	}

	var cache *qfuncs.EtaCache
	if cfg.EtaCache {
		cache = qfuncs.NewEtaCache()
	}

	trunc := cfg.Trunc
	if trunc < 1 {
		trunc = config.Default().Trunc
	}

	displayTerms := cfg.DisplayTerms
	if displayTerms < 1 {
		displayTerms = series.DefaultDisplayTerms
	}

	return &Engine{
		trunc:        trunc,
		q:            series.Q(trunc),
		displayTerms: displayTerms,
		cache:        cache,
		conv:         convert.NewConverter(cache, log.Component("convert")),
		log:          log,
	}
}

// Trunc returns the active truncation.
func (e *Engine) Trunc() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.trunc
}

// Q returns the canonical series q + O(q^T) at the active truncation.
func (e *Engine) Q() series.Series {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.q
}

// SetTrunc sets the active truncation and clears the eta cache.
func (e *Engine) SetTrunc(T int) error {

	if T < 1 {
		return errors.Wrapf(ErrArgType, "set_trunc: truncation must be positive but is %d", T)
	}

	e.mu.Lock()
	e.trunc = T
	e.q = series.Q(T)
	e.mu.Unlock()

	if e.cache != nil {
		e.cache.Clear()
	}

	e.log.Debug("truncation changed", zap.Int("T", T))

	return nil
}

// Render returns the textual form of r, showing series up to the configured number of terms.
func (e *Engine) Render(r Result) string {
	return Render(r, e.displayTerms)
}

// Call evaluates the builtin name on the given arguments.
func (e *Engine) Call(name string, vals ...Value) (Result, error) {

	b, ok := builtins[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownBuiltin, "%q", name)
	}

	if !b.accepts(len(vals)) {
		return nil, errors.Wrapf(ErrArity, "%s: got %d, usage %s", name, len(vals), b.usage)
	}

	for i := range vals {
		if vals[i] == nil {
			return nil, errors.Wrapf(ErrArgType, "%s: argument %d is nil", name, i+1)
		}
	}

	return b.fn(e, args{name: name, vals: vals, trunc: e.Trunc()})
}
