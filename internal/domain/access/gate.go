package access

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"startup-marketplace/internal/domain/startups"
)

// Messages returned with a denied decision.
const (
	ReasonAuthRequired = "Authentication required"
	ReasonPlanRequired = "Viewing startup details requires an active plan"
)

// Resolver returns the union of allowed-field tokens for a user.
type Resolver interface {
	AllowedFields(ctx context.Context, userID uint) (TokenSet, error)
}

type ViewRecorder interface {
	RecordView(ctx context.Context, userID, startupID uint) error
}

type ViewCounter interface {
	CountViews(ctx context.Context, startupID uint) (int64, error)
}

// Decision is the result of one read authorization. It is never persisted.
type Decision struct {
	Mode      Mode
	Tokens    TokenSet
	ViewCount *int64
	Reason    string
}

// Gate decides, per read, between full, filtered and denied access to a profile.
type Gate struct {
	resolver      Resolver
	recorder      ViewRecorder
	counter       ViewCounter
	logger        *slog.Logger
	recordTimeout time.Duration

	pending sync.WaitGroup
}

func NewGate(resolver Resolver, recorder ViewRecorder, counter ViewCounter, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		resolver:      resolver,
		recorder:      recorder,
		counter:       counter,
		logger:        logger,
		recordTimeout: 5 * time.Second,
	}
}

// AuthorizeRead runs ownerCheck then entitlementCheck. Only resolver or counter failures are errors.
func (g *Gate) AuthorizeRead(ctx context.Context, ownerID, startupID uint, requester *Identity) (Decision, error) {
	if requester == nil {
		return Decision{Mode: ModeDenied, Reason: ReasonAuthRequired}, nil
	}

	if requester.ID == ownerID {
		n, err := g.counter.CountViews(ctx, startupID)
		if err != nil {
			return Decision{}, err
		}
		return Decision{Mode: ModeFull, ViewCount: &n}, nil
	}

	tokens, err := g.resolver.AllowedFields(ctx, requester.ID)
	if err != nil {
		return Decision{}, err
	}
	if tokens.Empty() {
		return Decision{Mode: ModeDenied, Reason: ReasonPlanRequired}, nil
	}

	g.recordViewAsync(ctx, requester.ID, startupID)
	return Decision{Mode: ModeFiltered, Tokens: tokens}, nil
}

// Read authorizes d for requester and returns what may be shown: the full aggregate for the
// owner, a filtered View otherwise, nil when denied.
func (g *Gate) Read(ctx context.Context, d *startups.Details, requester *Identity) (any, Decision, error) {
	dec, err := g.AuthorizeRead(ctx, d.UserID, d.ID, requester)
	if err != nil {
		return nil, dec, err
	}
	switch dec.Mode {
	case ModeFull:
		d.ViewCount = dec.ViewCount
		return d, dec, nil
	case ModeFiltered:
		d.ViewCount = nil
		return Filter(d, dec.Tokens), dec, nil
	default:
		return nil, dec, nil
	}
}

// Wait blocks until in-flight view recordings have finished.
func (g *Gate) Wait() {
	g.pending.Wait()
}

func (g *Gate) recordViewAsync(ctx context.Context, userID, startupID uint) {
	if g.recorder == nil {
		return
	}
	g.pending.Add(1)
	go func() {
		defer g.pending.Done()
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.recordTimeout)
		defer cancel()
		if err := g.recorder.RecordView(rctx, userID, startupID); err != nil {
			g.logger.Warn("failed to record startup view", "startup_id", startupID, "user_id", userID, "error", err)
		}
	}()
}
