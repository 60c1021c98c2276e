package ledger

import (
	"fmt"

	"patronage/internal/domain"
	"patronage/internal/store"
)

// Persisted namespaces. Project ids render as fixed-width hex so the byte
// order of map keys matches numeric order.
var (
	countItem    = store.NewItem[uint64]("project_count")
	operatorItem = store.NewItem[domain.Address]("operator")
	projectsMap  = store.NewMap[domain.Project]("projects")
	donationsMap = store.NewMap[[]domain.DonationRecord]("donations")
)

func projectKey(id uint64) string {
	return fmt.Sprintf("%016x", id)
}

func donationKey(projectID uint64, patron domain.Address) string {
	return fmt.Sprintf("%016x/%s", projectID, patron)
}

// loadCount reads the project counter, translating an absent counter into
// the not-initialized error.
func loadCount(kv store.KV) (uint64, error) {
	count, ok, err := countItem.MayLoad(kv)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domain.ErrNotInitialized
	}
	return count, nil
}

func loadOperator(kv store.KV) (domain.Address, error) {
	op, ok, err := operatorItem.MayLoad(kv)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrNotInitialized
	}
	return op, nil
}
