package resolve

import (
	"fmt"
	"sort"

	"github.com/datadonation/dds/internal/catalog"
	"github.com/datadonation/dds/internal/common"
	"github.com/datadonation/dds/internal/model"
)

// UsedVariables merges a project's enabled built-ins and custom variables
// into one display list sorted by provider. Built-ins come straight from the
// catalog; customs are rendered through provider-less resolvers, so no
// records are fetched.
func UsedVariables(enabledBuiltins []string, customs []model.CustomVariable) ([]catalog.VariableSchema, error) {
	var used []catalog.VariableSchema

	for _, qn := range enabledBuiltins {
		v, d, c, ok := catalog.FindBuiltin(qn)
		if !ok {
			return nil, fmt.Errorf("builtin variable %q: %w", qn, common.ErrNotFound)
		}
		used = append(used, catalog.VariableSchema{
			Name:         qn,
			Label:        v.Label,
			Source:       "builtin",
			DataType:     string(v.Kind),
			Category:     c.Name,
			DataProvider: d.Type,
			Description:  v.Description,
			Info:         v.Info,
			Unit:         v.Unit,
			Provenance:   v.Provenance,
			IsIndexed:    v.IsIndexed,
			Index:        v.Index,
		})
	}

	for _, cv := range customs {
		r, err := NewResolver(cv)
		if err != nil {
			return nil, err
		}
		used = append(used, r.Schema()...)
	}

	sort.SliceStable(used, func(i, j int) bool {
		return used[i].DataProvider < used[j].DataProvider
	})

	return used, nil
}
