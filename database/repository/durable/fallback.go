package durable

import (
	"context"
	"errors"
	"sync/atomic"

	"lawyerconnect/metrics"
	"lawyerconnect/models"

	"go.uber.org/zap"
)

// Switch records whether the durable tier has failed over. It is shared by
// every Fallback collection and only ever flips one way: once degraded, the
// rest of the process runs against the shadow stores. Nothing is replayed
// back to MongoDB.
type Switch struct {
	degraded atomic.Bool
	logger   *zap.Logger
}

func NewSwitch(logger *zap.Logger) *Switch {
	return &Switch{logger: logger}
}

// Degraded reports whether calls are being served from the shadow stores.
func (s *Switch) Degraded() bool {
	return s.degraded.Load()
}

// Trip moves the tier to the shadow stores. Only the first call logs.
func (s *Switch) Trip(cause error) {
	if s.degraded.CompareAndSwap(false, true) {
		s.logger.Warn("durable store unreachable, continuing on in-process shadow store", zap.Error(cause))
		metrics.DurableDegraded.Set(1)
	}
}

// Fallback serves a collection from the primary until the primary reports a
// connectivity failure, then retries that call and every later one on the shadow.
type Fallback[D Document[D]] struct {
	primary Collection[D]
	shadow  Collection[D]
	sw      *Switch
}

func NewFallback[D Document[D]](primary, shadow Collection[D], sw *Switch) *Fallback[D] {
	return &Fallback[D]{primary: primary, shadow: shadow, sw: sw}
}

func (f *Fallback[D]) Insert(ctx context.Context, doc D) (D, error) {
	return failover(f, func(c Collection[D]) (D, error) { return c.Insert(ctx, doc) })
}

func (f *Fallback[D]) FindByID(ctx context.Context, id string) (D, error) {
	return failover(f, func(c Collection[D]) (D, error) { return c.FindByID(ctx, id) })
}

func (f *Fallback[D]) FindBy(ctx context.Context, field string, value any) ([]D, error) {
	return failover(f, func(c Collection[D]) ([]D, error) { return c.FindBy(ctx, field, value) })
}

func (f *Fallback[D]) List(ctx context.Context) ([]D, error) {
	return failover(f, func(c Collection[D]) ([]D, error) { return c.List(ctx) })
}

func (f *Fallback[D]) UpdateFields(ctx context.Context, id string, guard, set Fields) (D, error) {
	return failover(f, func(c Collection[D]) (D, error) { return c.UpdateFields(ctx, id, guard, set) })
}

func failover[D Document[D], T any](f *Fallback[D], call func(Collection[D]) (T, error)) (T, error) {
	if !f.sw.Degraded() {
		out, err := call(f.primary)
		if err == nil || !errors.Is(err, models.ErrStoreUnavailable) {
			return out, err
		}
		f.sw.Trip(err)
	}
	return call(f.shadow)
}
