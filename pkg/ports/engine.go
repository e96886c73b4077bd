package ports

import (
	"context"

	"github.com/aretw0/pdaboat/pkg/domain"
)

// Simulator is the stateless core used by adapters (HTTP, MCP, game sessions).
// Implementations must be safe for concurrent use and never fail a simulation: unknown
// templates fall back to a default and rejections are part of the trace.
type Simulator interface {
	// Simulate generates the complete trace of input under the template.
	Simulate(ctx context.Context, templateID, input string, mode domain.Mode) *domain.Result

	// Templates lists the available templates in catalogue order.
	Templates() []domain.TemplateInfo

	// Template performs a strict lookup by id.
	Template(id string) (domain.Template, bool)
}
