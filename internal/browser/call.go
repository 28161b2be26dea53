package browser

import (
	"encoding/json"
	"fmt"
	"strings"
)

// buildCall turns a function expression and arguments into a single
// invocation expression: (js)(arg0, arg1, ...).
func buildCall(js string, args ...any) (string, error) {
	parts := make([]string, 0, len(args))
	for i, a := range args {
		b, err := json.Marshal(a)
		if err != nil {
			return "", fmt.Errorf("encoding argument %d: %w", i, err)
		}
		parts = append(parts, string(b))
	}
	return "(" + strings.TrimSpace(js) + ")(" + strings.Join(parts, ", ") + ")", nil
}
