package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gun110939/demo-flow-send-pwa/internal/domain/model"
	"github.com/gun110939/demo-flow-send-pwa/pkg/logger"
)

// Load reads the employee export (a JSON array in the personnel-system
// column shape) from path and builds a Directory. Rows without a
// positive PERNR are dropped, matching the export parser.
func Load(ctx context.Context, path string) (*Directory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadDirectory, path, err)
	}

	var rows []model.Employee
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParseDirectory, path, err)
	}

	employees := rows[:0]
	for _, e := range rows {
		if e.ID > 0 {
			employees = append(employees, e)
		}
	}
	if len(employees) == 0 {
		return nil, fmt.Errorf("%w: %s: no employee rows", ErrParseDirectory, path)
	}

	d := New(employees)
	logger.Get().Info(ctx, "employee directory loaded",
		logger.String("path", path),
		logger.Int("employees", d.Count()),
		logger.Int("parentOrgs", len(d.ParentOrgs())),
	)

	return d, nil
}
