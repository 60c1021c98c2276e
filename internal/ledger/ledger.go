// Package ledger is the donation accounting core: the project registry, the
// per-patron donation history, and the fee split that turns a donation into
// outbound transfer instructions. It computes state transitions over the
// store only; executing the transfers is the host's job.
package ledger

import (
	"context"

	"patronage/internal/domain"
	"patronage/internal/store"
)

type Ledger struct {
	store store.Store
}

func New(s store.Store) *Ledger {
	return &Ledger{store: s}
}

// Init records the platform operator identity and starts the project counter
// at zero. It runs exactly once per store; a second call fails.
func (l *Ledger) Init(ctx context.Context, op domain.Address) error {
	return l.store.Update(ctx, func(kv store.KV) error {
		if _, ok, err := operatorItem.MayLoad(kv); err != nil {
			return err
		} else if ok {
			return domain.ErrAlreadyInitialized
		}
		if err := operatorItem.Save(kv, op); err != nil {
			return err
		}
		return countItem.Save(kv, 0)
	})
}

// Initialized reports whether Init has run against the store.
func (l *Ledger) Initialized(ctx context.Context) (bool, error) {
	var ok bool
	err := l.store.View(ctx, func(kv store.KV) error {
		var err error
		_, ok, err = operatorItem.MayLoad(kv)
		return err
	})
	return ok, err
}

// Operator returns the identity receiving the platform's fee share.
func (l *Ledger) Operator(ctx context.Context) (domain.Address, error) {
	var op domain.Address
	err := l.store.View(ctx, func(kv store.KV) error {
		var err error
		op, err = loadOperator(kv)
		return err
	})
	return op, err
}

// donate is the orchestration behind DonateMsg: project lookup, history
// append, fee split, transfer construction. The project lookup runs before
// any write, so an unknown id mutates nothing.
func donate(kv store.KV, projectID uint64, patron domain.Address, funds domain.Funds) ([]domain.Transfer, error) {
	project, ok, err := projectsMap.MayLoad(kv, projectKey(projectID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.UnknownProjectError{ID: projectID}
	}

	if err := appendDonation(kv, projectID, patron, funds); err != nil {
		return nil, err
	}

	op, err := loadOperator(kv)
	if err != nil {
		return nil, err
	}

	creatorShare, operatorShare := Split(funds, Threshold)
	transfers := make([]domain.Transfer, 0, 2)
	if share := creatorShare.NonZero(); len(share) > 0 {
		transfers = append(transfers, domain.Transfer{To: project.Creator, Funds: share})
	}
	if share := operatorShare.NonZero(); len(share) > 0 {
		transfers = append(transfers, domain.Transfer{To: op, Funds: share})
	}
	return transfers, nil
}
