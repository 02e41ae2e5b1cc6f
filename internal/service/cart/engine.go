package cart

import (
	"context"
	"errors"
	"sync"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/logging"
	"go.uber.org/zap"
)

// ErrSignedOut is returned by Live for a guest session.
var ErrSignedOut = errors.New("live cart requires a signed-in user")

// AuthState is either signed out (empty UserID) or signed in as UserID.
type AuthState struct {
	UserID string
}

func SignedOut() AuthState { return AuthState{} }
func SignedIn(uid string) AuthState { return AuthState{UserID: uid} }
func (a AuthState) IsSignedIn() bool { return a.UserID != "" }

// Subscriber streams remote rewrites of a user's cart.
type Subscriber interface {
	Subscribe(ctx context.Context, userID string) (<-chan []domain.CartLine, func(), error)
}

// Engine presents one logical cart whichever holder currently owns it.
//
// Mutations update the in-memory lines first and then persist the whole array
// to the active holder. A failed write is logged and the in-memory state is
// kept; the next successful write or live update reconciles it.
type Engine struct {
	mu     sync.Mutex
	local  LocalHolder
	remote func(uid string) Store
	sub    Subscriber
	logger *zap.Logger

	state  AuthState
	active Store
	items  []domain.CartLine
}

func NewEngine(local LocalHolder, remote func(uid string) Store, sub Subscriber, logger *zap.Logger) *Engine {
	return &Engine{
		local:  local,
		remote: remote,
		sub:    sub,
		logger: logging.OrNop(logger),
		active: local,
		items:  []domain.CartLine{},
	}
}

// Observe switches the engine to the holder matching state and loads it.
// Signing in with no remote cart and a non-empty guest cart copies the guest
// lines to the remote holder once and empties the guest holder.
func (e *Engine) Observe(ctx context.Context, state AuthState) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = state
	if !state.IsSignedIn() {
		e.active = e.local
		e.items = e.loadLocal(ctx)
		return
	}

	remote := e.remote(state.UserID)
	e.active = remote
	items, found, err := remote.Load(ctx)
	switch {
	case err != nil:
		e.logger.Warn("cart engine: remote load failed, falling back to guest cart",
			zap.String("user_id", state.UserID), zap.Error(err))
		e.items = e.loadLocal(ctx)
	case found:
		e.items = items
	default:
		guest := e.loadLocal(ctx)
		e.items = guest
		if len(guest) == 0 {
			return
		}
		if err := remote.Save(ctx, guest); err != nil {
			// guest holder stays intact so the next sign-in retries
			e.logger.Warn("cart engine: migration write failed", zap.String("user_id", state.UserID), zap.Error(err))
			return
		}
		if err := e.local.Clear(ctx); err != nil {
			e.logger.Warn("cart engine: clear guest cart after migration", zap.Error(err))
		}
		e.logger.Info("cart engine: migrated guest cart", zap.String("user_id", state.UserID), zap.Int("lines", len(guest)))
	}
}

func (e *Engine) loadLocal(ctx context.Context) []domain.CartLine {
	if e.local == nil {
		return []domain.CartLine{}
	}
	items, _, err := e.local.Load(ctx)
	if err != nil {
		e.logger.Warn("cart engine: guest cart load failed", zap.Error(err))
		return []domain.CartLine{}
	}
	return items
}

// Items returns a copy of the current lines.
func (e *Engine) Items() []domain.CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	return clone(e.items)
}

// Add increments the line for the product or appends a new one at quantity 1.
func (e *Engine) Add(ctx context.Context, line domain.CartLine) []domain.CartLine {
	return e.mutate(ctx, "add", func(items []domain.CartLine) ([]domain.CartLine, bool) {
		if i := indexOf(items, line.ID); i >= 0 {
			items[i].Quantity++
			return items, true
		}
		line.Quantity = 1
		return append(items, line), true
	})
}

func (e *Engine) Remove(ctx context.Context, productID string) []domain.CartLine {
	return e.mutate(ctx, "remove", func(items []domain.CartLine) ([]domain.CartLine, bool) {
		i := indexOf(items, productID)
		if i < 0 {
			return items, false
		}
		return append(items[:i], items[i+1:]...), true
	})
}

// SetQuantity overwrites the quantity; zero removes the line. Stock is not
// enforced here.
func (e *Engine) SetQuantity(ctx context.Context, productID string, n int) []domain.CartLine {
	if n <= 0 {
		return e.Remove(ctx, productID)
	}
	return e.mutate(ctx, "set quantity", func(items []domain.CartLine) ([]domain.CartLine, bool) {
		i := indexOf(items, productID)
		if i < 0 || items[i].Quantity == n {
			return items, false
		}
		items[i].Quantity = n
		return items, true
	})
}

func (e *Engine) Increment(ctx context.Context, productID string) []domain.CartLine {
	return e.mutate(ctx, "increment", func(items []domain.CartLine) ([]domain.CartLine, bool) {
		i := indexOf(items, productID)
		if i < 0 {
			return items, false
		}
		items[i].Quantity++
		return items, true
	})
}

// Decrement never takes a line below quantity 1.
func (e *Engine) Decrement(ctx context.Context, productID string) []domain.CartLine {
	return e.mutate(ctx, "decrement", func(items []domain.CartLine) ([]domain.CartLine, bool) {
		i := indexOf(items, productID)
		if i < 0 || items[i].Quantity <= 1 {
			return items, false
		}
		items[i].Quantity--
		return items, true
	})
}

// Clear empties the cart in whichever holder is active.
func (e *Engine) Clear(ctx context.Context) []domain.CartLine {
	return e.mutate(ctx, "clear", func([]domain.CartLine) ([]domain.CartLine, bool) {
		return []domain.CartLine{}, true
	})
}

func (e *Engine) mutate(ctx context.Context, op string, fn func([]domain.CartLine) ([]domain.CartLine, bool)) []domain.CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, changed := fn(clone(e.items))
	if !changed {
		return clone(e.items)
	}
	e.items = next
	if e.active != nil {
		if err := e.active.Save(ctx, next); err != nil {
			e.logger.Error("cart engine: persist failed", zap.String("op", op),
				zap.String("user_id", e.state.UserID), zap.Error(err))
		}
	}
	return clone(next)
}

// Live follows remote rewrites of the signed-in user's cart. Each update
// replaces the in-memory lines (last writer wins) and is forwarded on the
// returned channel until stop is called or ctx ends.
func (e *Engine) Live(ctx context.Context) (<-chan []domain.CartLine, func(), error) {
	e.mu.Lock()
	state := e.state
	e.mu.Unlock()
	if !state.IsSignedIn() {
		return nil, nil, ErrSignedOut
	}
	if e.sub == nil {
		return nil, nil, errors.New("live cart: no subscriber configured")
	}

	updates, stop, err := e.sub.Subscribe(ctx, state.UserID)
	if err != nil {
		return nil, nil, err
	}
	out := make(chan []domain.CartLine, 1)
	go func() {
		defer close(out)
		for items := range updates {
			e.mu.Lock()
			e.items = clone(items)
			e.mu.Unlock()
			select {
			case out <- clone(items):
			case <-ctx.Done():
				stop()
				return
			}
		}
	}()
	return out, stop, nil
}

func indexOf(items []domain.CartLine, productID string) int {
	for i := range items {
		if items[i].ID == productID {
			return i
		}
	}
	return -1
}

func clone(items []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, len(items))
	copy(out, items)
	return out
}
