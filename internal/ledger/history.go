package ledger

import (
	"patronage/internal/domain"
	"patronage/internal/store"
)

// appendDonation records the raw, pre-fee funds under (project, patron). An
// absent key is an empty history; the first donation creates it.
func appendDonation(kv store.KV, projectID uint64, patron domain.Address, funds domain.Funds) error {
	key := donationKey(projectID, patron)
	records, _, err := donationsMap.MayLoad(kv, key)
	if err != nil {
		return err
	}
	records = append(records, domain.DonationRecord{Funds: funds})
	return donationsMap.Save(kv, key, records)
}

// donationsForProjectByPatron returns the recorded history for the pair. The
// project id must be a currently assigned one; having no donations is not an
// error.
func donationsForProjectByPatron(kv store.KV, projectID uint64, patron domain.Address) ([]domain.DonationRecord, error) {
	count, err := loadCount(kv)
	if err != nil {
		return nil, err
	}
	if projectID >= count {
		return nil, domain.UnknownProjectError{ID: projectID}
	}
	records, _, err := donationsMap.MayLoad(kv, donationKey(projectID, patron))
	if err != nil {
		return nil, err
	}
	return records, nil
}
