package domain

// Project is a registered crowdfunding project. Immutable after creation;
// ids are assigned in creation order starting at 0.
type Project struct {
	Name    string  `json:"name"`
	Creator Address `json:"creator"`
}

// DonationRecord is one raw donation as submitted by the patron, before the
// fee split. The history is an audit trail of what was donated, not of what
// was paid out.
type DonationRecord struct {
	Funds Funds `json:"funds"`
}

// Transfer is an outbound payment instruction. The ledger never moves funds
// itself; it hands these to the host for execution.
type Transfer struct {
	To    Address `json:"to"`
	Funds Funds   `json:"funds"`
}
