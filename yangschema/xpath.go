// Copyright (c) 2026, AT&T Intellectual Property. All rights reserved.
//
// SPDX-License-Identifier: LGPL-2.1-only

package yangschema

import (
	"fmt"

	"github.com/PaesslerAG/gval"
)

// EvalMust evaluates one `must`/`when` substatement expression against a
// flat set of sibling leaf values, as a boolean constraint check. The
// yangvalidate passes do not call it; their mandatory, key, type and
// choice/case checks are implemented directly.
//
// The expression language is the restricted arithmetic/boolean subset gval
// provides out of the box; full XPath node-set semantics are intentionally
// not implemented here (spec.md §1 places XPath evaluation proper out of
// scope, beyond forwarding filter `select` strings to the backend).
func EvalMust(expr string, values map[string]interface{}) (bool, error) {
	result, err := gval.Evaluate(expr, values)
	if err != nil {
		return false, fmt.Errorf("yangschema: evaluating %q: %w", expr, err)
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("yangschema: %q did not evaluate to a boolean (got %T)", expr, result)
	}
	return b, nil
}
