package hclload

import (
	"fmt"
	"sort"

	"github.com/vk/archgrid/internal/model"
)

// translate merges one file's decoded blocks into the declaration.
func (l *Loader) translate(decl *Declaration, root *fileRoot) error {
	for _, b := range root.Goals {
		decl.Nodes = append(decl.Nodes, model.Goal{
			Base:           model.Base{Tag: b.ID, Title: b.Name},
			AcceptanceTest: b.AcceptanceTest,
			Description:    b.Description,
		})
	}

	for _, b := range root.Solutions {
		sol := model.Solution{
			Base:          model.Base{Tag: b.ID, Title: b.Name},
			Satisfies:     b.Satisfies,
			Requires:      b.Requires,
			ConflictsWith: b.ConflictsWith,
			Description:   b.Description,
		}
		if b.Constraints != nil {
			constraints, err := opaqueAttributes(b.Constraints.Body)
			if err != nil {
				return fmt.Errorf("solution %q constraints: %w", b.ID, err)
			}
			sol.Constraints = constraints
		}
		decl.Nodes = append(decl.Nodes, sol)
	}

	for _, b := range root.Implementations {
		decl.Nodes = append(decl.Nodes, model.Implementation{
			Base:        model.Base{Tag: b.ID, Title: b.Name},
			Implements:  b.Implements,
			CodeFiles:   b.CodeFiles,
			TestFiles:   b.TestFiles,
			MustDefine:  b.MustDefine,
			Description: b.Description,
		})
	}

	for _, b := range root.Verifications {
		class := model.VerificationClass(b.Class)
		if !class.Valid() {
			return fmt.Errorf("verification %q: unknown kind %q", b.ID, b.Class)
		}
		decl.Nodes = append(decl.Nodes, model.Verification{
			Base:          model.Base{Tag: b.ID, Title: b.Name},
			Class:         class,
			Verifies:      b.Verifies,
			TestFile:      b.TestFile,
			TestFunctions: b.TestFunctions,
		})
	}

	for _, b := range root.Measurements {
		values, err := opaqueAttributes(b.Body)
		if err != nil {
			return fmt.Errorf("measurement %q: %w", b.Target, err)
		}
		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			decl.Measurements = append(decl.Measurements, Measurement{
				NodeID: b.Target,
				Key:    key,
				Value:  values[key],
			})
		}
	}

	return nil
}
