package ledger

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"patronage/internal/domain"
	"patronage/internal/store"
)

const testOperator = domain.Address("operator")

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	st, err := store.NewMemoryStore()
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	l := New(st)
	if err := l.Init(context.Background(), testOperator); err != nil {
		t.Fatalf("init ledger: %v", err)
	}
	return l
}

func createProjectT(t *testing.T, l *Ledger, name string, creator domain.Address) uint64 {
	t.Helper()
	res, err := l.Execute(context.Background(), creator, nil, CreateProjectMsg{Name: name})
	if err != nil {
		t.Fatalf("create project %q: %v", name, err)
	}
	if res.ProjectID == nil {
		t.Fatalf("create project %q returned no id", name)
	}
	return *res.ProjectID
}

func listProjectsT(t *testing.T, l *Ledger) []domain.Project {
	t.Helper()
	res, err := l.Query(context.Background(), ListProjectsMsg{})
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	return res.(ListProjectsResult).Projects
}

func listDonationsT(t *testing.T, l *Ledger, projectID uint64, patron domain.Address) ([]domain.DonationRecord, error) {
	t.Helper()
	res, err := l.Query(context.Background(), ListDonationsForProjectByPatronMsg{ProjectID: projectID, Patron: patron})
	if err != nil {
		return nil, err
	}
	return res.(ListDonationsResult).Donations, nil
}

func TestInitOnlyOnce(t *testing.T) {
	l := newTestLedger(t)

	err := l.Init(context.Background(), "someone-else")
	if !errors.Is(err, domain.ErrAlreadyInitialized) {
		t.Fatalf("second init: got %v, want ErrAlreadyInitialized", err)
	}

	op, err := l.Operator(context.Background())
	if err != nil {
		t.Fatalf("operator: %v", err)
	}
	if op != testOperator {
		t.Fatalf("operator = %q, want %q", op, testOperator)
	}
}

func TestUninitializedLedger(t *testing.T) {
	st, err := store.NewMemoryStore()
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	l := New(st)

	ok, err := l.Initialized(context.Background())
	if err != nil {
		t.Fatalf("initialized: %v", err)
	}
	if ok {
		t.Fatal("fresh store reports initialized")
	}

	if _, err := l.Query(context.Background(), ListProjectsMsg{}); !errors.Is(err, domain.ErrNotInitialized) {
		t.Fatalf("query on fresh store: got %v, want ErrNotInitialized", err)
	}
}

func TestRegistryGrowth(t *testing.T) {
	l := newTestLedger(t)

	if projects := listProjectsT(t, l); len(projects) != 0 {
		t.Fatalf("fresh ledger has %d projects, want 0", len(projects))
	}

	id0 := createProjectT(t, l, "Project0", "alice")
	id1 := createProjectT(t, l, "Project1", "bob")
	if id0 != 0 || id1 != 1 {
		t.Fatalf("assigned ids (%d, %d), want (0, 1)", id0, id1)
	}

	projects := listProjectsT(t, l)
	if len(projects) != 2 {
		t.Fatalf("got %d projects, want 2", len(projects))
	}
	want := []domain.Project{
		{Name: "Project0", Creator: "alice"},
		{Name: "Project1", Creator: "bob"},
	}
	if !reflect.DeepEqual(projects, want) {
		t.Fatalf("projects = %+v, want %+v", projects, want)
	}
}

func TestDonateSplitsBetweenCreatorAndOperator(t *testing.T) {
	l := newTestLedger(t)
	id := createProjectT(t, l, "projectname", "creator")

	res, err := l.Execute(context.Background(), "patron", domain.Funds{{Denom: "eth", Amount: 5}}, DonateMsg{ProjectID: id})
	if err != nil {
		t.Fatalf("donate: %v", err)
	}

	want := []domain.Transfer{
		{To: "creator", Funds: domain.Funds{{Denom: "eth", Amount: 4}}},
		{To: testOperator, Funds: domain.Funds{{Denom: "eth", Amount: 1}}},
	}
	if !reflect.DeepEqual(res.Transfers, want) {
		t.Fatalf("transfers = %+v, want %+v", res.Transfers, want)
	}

	donations, err := listDonationsT(t, l, id, "patron")
	if err != nil {
		t.Fatalf("list donations: %v", err)
	}
	wantHistory := []domain.DonationRecord{{Funds: domain.Funds{{Denom: "eth", Amount: 5}}}}
	if !reflect.DeepEqual(donations, wantHistory) {
		t.Fatalf("history = %+v, want %+v", donations, wantHistory)
	}
}

func TestDonateAboveThreshold(t *testing.T) {
	l := newTestLedger(t)
	id := createProjectT(t, l, "projectname", "creator")

	res, err := l.Execute(context.Background(), "patron", domain.Funds{{Denom: "eth", Amount: 10_001}}, DonateMsg{ProjectID: id})
	if err != nil {
		t.Fatalf("donate: %v", err)
	}
	want := []domain.Transfer{
		{To: "creator", Funds: domain.Funds{{Denom: "eth", Amount: 9_500}}},
		{To: testOperator, Funds: domain.Funds{{Denom: "eth", Amount: 501}}},
	}
	if !reflect.DeepEqual(res.Transfers, want) {
		t.Fatalf("transfers = %+v, want %+v", res.Transfers, want)
	}
}

func TestDonateUnknownProjectMutatesNothing(t *testing.T) {
	l := newTestLedger(t)
	createProjectT(t, l, "Project0", "alice")

	_, err := l.Execute(context.Background(), "patron", domain.Funds{{Denom: "eth", Amount: 5}}, DonateMsg{ProjectID: 7})
	var unknown domain.UnknownProjectError
	if !errors.As(err, &unknown) || unknown.ID != 7 {
		t.Fatalf("donate to unknown project: got %v, want UnknownProjectError{7}", err)
	}

	if projects := listProjectsT(t, l); len(projects) != 1 {
		t.Fatalf("failed donate changed registry: %d projects", len(projects))
	}
	donations, err := listDonationsT(t, l, 0, "patron")
	if err != nil {
		t.Fatalf("list donations: %v", err)
	}
	if len(donations) != 0 {
		t.Fatalf("failed donate left history: %+v", donations)
	}
}

func TestDonationHistoryAccumulatesInOrder(t *testing.T) {
	l := newTestLedger(t)
	id := createProjectT(t, l, "Project0", "alice")

	for _, amount := range []uint64{5, 10} {
		if _, err := l.Execute(context.Background(), "patron", domain.Funds{{Denom: "eth", Amount: amount}}, DonateMsg{ProjectID: id}); err != nil {
			t.Fatalf("donate %d: %v", amount, err)
		}
	}

	donations, err := listDonationsT(t, l, id, "patron")
	if err != nil {
		t.Fatalf("list donations: %v", err)
	}
	want := []domain.DonationRecord{
		{Funds: domain.Funds{{Denom: "eth", Amount: 5}}},
		{Funds: domain.Funds{{Denom: "eth", Amount: 10}}},
	}
	if !reflect.DeepEqual(donations, want) {
		t.Fatalf("history = %+v, want %+v", donations, want)
	}

	// A different patron of the same project still has an empty history.
	other, err := listDonationsT(t, l, id, "random_person")
	if err != nil {
		t.Fatalf("list donations for other patron: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("unexpected history for other patron: %+v", other)
	}
}

func TestListDonationsUnknownProject(t *testing.T) {
	l := newTestLedger(t)

	_, err := listDonationsT(t, l, 0, "patron")
	var unknown domain.UnknownProjectError
	if !errors.As(err, &unknown) || unknown.ID != 0 {
		t.Fatalf("got %v, want UnknownProjectError{0}", err)
	}

	createProjectT(t, l, "Project0", "alice")
	if _, err := listDonationsT(t, l, 0, "patron"); err != nil {
		t.Fatalf("query assigned id: %v", err)
	}
	if _, err := listDonationsT(t, l, 1, "patron"); err == nil {
		t.Fatal("query past the counter succeeded")
	}
}

func TestDonateZeroAmountEmitsNoTransfers(t *testing.T) {
	l := newTestLedger(t)
	id := createProjectT(t, l, "Project0", "alice")

	res, err := l.Execute(context.Background(), "patron", domain.Funds{{Denom: "eth", Amount: 0}}, DonateMsg{ProjectID: id})
	if err != nil {
		t.Fatalf("donate zero: %v", err)
	}
	if len(res.Transfers) != 0 {
		t.Fatalf("zero donation produced transfers: %+v", res.Transfers)
	}

	// The raw donation is still recorded.
	donations, err := listDonationsT(t, l, id, "patron")
	if err != nil {
		t.Fatalf("list donations: %v", err)
	}
	if len(donations) != 1 {
		t.Fatalf("history length = %d, want 1", len(donations))
	}
}

func TestRepeatedDonationsAreDistinctRecords(t *testing.T) {
	l := newTestLedger(t)
	id := createProjectT(t, l, "Project0", "alice")

	funds := domain.Funds{{Denom: "eth", Amount: 10}}
	for i := 0; i < 3; i++ {
		if _, err := l.Execute(context.Background(), "patron", funds, DonateMsg{ProjectID: id}); err != nil {
			t.Fatalf("donate %d: %v", i, err)
		}
	}
	donations, err := listDonationsT(t, l, id, "patron")
	if err != nil {
		t.Fatalf("list donations: %v", err)
	}
	if len(donations) != 3 {
		t.Fatalf("history length = %d, want 3", len(donations))
	}
}
