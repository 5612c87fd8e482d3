package resolve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/datadonation/dds/internal/catalog"
	"github.com/datadonation/dds/internal/common"
	"github.com/datadonation/dds/internal/model"
)

// ResolveBuiltins computes the enabled built-in variables of one provider
// against a live source. Output keys follow the same qualified-name grammar
// and exists-flag convention as custom-variable projection. An extractor
// failure degrades that one variable to exists=false; it never aborts the
// batch.
func ResolveBuiltins(ctx context.Context, providerType string, src model.Source, enabled []string) (map[string]any, error) {
	d, err := catalog.Provider(providerType)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(enabled))
	for _, qn := range enabled {
		wanted[qn] = true
	}

	out := make(map[string]any, 2*len(enabled))
	for i := range d.Categories {
		c := &d.Categories[i]
		for _, v := range c.Builtins() {
			qn := v.QualifiedName(d.Type, c.Name)
			if !wanted[qn] {
				continue
			}
			delete(wanted, qn)

			value, err := v.Extract(ctx, src)
			if err != nil {
				slog.Warn("Builtin extraction failed",
					"variable", qn, "error", err)
				out[qn+".exists"] = false
				continue
			}
			if model.ValueExists(value) {
				out[qn] = value
				out[qn+".exists"] = true
			} else {
				out[qn+".exists"] = false
			}
		}
	}

	for qn := range wanted {
		return nil, fmt.Errorf("builtin variable %q: %w", qn, common.ErrNotFound)
	}

	return out, nil
}
