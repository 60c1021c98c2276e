package ledger

import (
	"context"
	"fmt"

	"patronage/internal/domain"
	"patronage/internal/store"
)

// ExecuteMsg is the closed set of state-changing commands. Dispatch is an
// exhaustive type switch; adding a variant without handling it is caught by
// the unhandled-message error.
type ExecuteMsg interface {
	isExecuteMsg()
}

// CreateProjectMsg registers a new project owned by the sender.
type CreateProjectMsg struct {
	Name string
}

// DonateMsg donates the attached funds to a project.
type DonateMsg struct {
	ProjectID uint64
}

func (CreateProjectMsg) isExecuteMsg() {}
func (DonateMsg) isExecuteMsg()        {}

// QueryMsg is the closed set of read-only queries.
type QueryMsg interface {
	isQueryMsg()
}

type ListProjectsMsg struct{}

type ListDonationsForProjectByPatronMsg struct {
	ProjectID uint64
	Patron    domain.Address
}

func (ListProjectsMsg) isQueryMsg()                    {}
func (ListDonationsForProjectByPatronMsg) isQueryMsg() {}

// ExecuteResult carries the effects of one command: the id assigned by
// CreateProjectMsg, or the transfer instructions produced by DonateMsg.
type ExecuteResult struct {
	ProjectID *uint64
	Transfers []domain.Transfer
}

type ListProjectsResult struct {
	Projects []domain.Project
}

type ListDonationsResult struct {
	Donations []domain.DonationRecord
}

// Execute applies one command as a single atomic unit: either every write it
// makes commits, or none do. The sender and attached funds come from the
// host already validated.
func (l *Ledger) Execute(ctx context.Context, sender domain.Address, funds domain.Funds, msg ExecuteMsg) (ExecuteResult, error) {
	var res ExecuteResult
	err := l.store.Update(ctx, func(kv store.KV) error {
		switch m := msg.(type) {
		case CreateProjectMsg:
			id, err := createProject(kv, m.Name, sender)
			if err != nil {
				return err
			}
			res.ProjectID = &id
			return nil
		case DonateMsg:
			transfers, err := donate(kv, m.ProjectID, sender, funds)
			if err != nil {
				return err
			}
			res.Transfers = transfers
			return nil
		default:
			return fmt.Errorf("unhandled execute message %T", msg)
		}
	})
	if err != nil {
		return ExecuteResult{}, err
	}
	return res, nil
}

// Query answers one read-only message against a snapshot of the store.
func (l *Ledger) Query(ctx context.Context, msg QueryMsg) (any, error) {
	var out any
	err := l.store.View(ctx, func(kv store.KV) error {
		switch m := msg.(type) {
		case ListProjectsMsg:
			projects, err := listProjects(kv)
			if err != nil {
				return err
			}
			out = ListProjectsResult{Projects: projects}
			return nil
		case ListDonationsForProjectByPatronMsg:
			records, err := donationsForProjectByPatron(kv, m.ProjectID, m.Patron)
			if err != nil {
				return err
			}
			out = ListDonationsResult{Donations: records}
			return nil
		default:
			return fmt.Errorf("unhandled query message %T", msg)
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
