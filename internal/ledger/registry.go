package ledger

import (
	"fmt"

	"patronage/internal/domain"
	"patronage/internal/store"
)

// createProject assigns the next id to a new project and bumps the counter.
// Both writes land in the same transaction as the caller's Update.
func createProject(kv store.KV, name string, creator domain.Address) (uint64, error) {
	id, err := loadCount(kv)
	if err != nil {
		return 0, err
	}
	if err := projectsMap.Save(kv, projectKey(id), domain.Project{Name: name, Creator: creator}); err != nil {
		return 0, err
	}
	if err := countItem.Save(kv, id+1); err != nil {
		return 0, err
	}
	return id, nil
}

// listProjects returns every project in creation order. The list length must
// equal the counter; a gap below the counter means the ledger is corrupt and
// surfaces as an error, never as a silently shortened list.
func listProjects(kv store.KV) ([]domain.Project, error) {
	count, err := loadCount(kv)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, count)
	for id := uint64(0); id < count; id++ {
		p, err := projectsMap.Load(kv, projectKey(id))
		if err != nil {
			return nil, fmt.Errorf("project %d missing below counter %d: %w", id, count, err)
		}
		out = append(out, p)
	}
	return out, nil
}
