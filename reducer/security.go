package reducer

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasreduce/internal/nodeutil"
)

// securitySchemesBucket is the components bucket holding security schemes.
const securitySchemesBucket = "securitySchemes"

// collectSecuritySchemes adds the scheme names named by the "security"
// requirement list of m (an operation or the document root) to names.
// Security requirements name schemes by key rather than by $ref.
func collectSecuritySchemes(m *yaml.Node, names map[string]bool) {
	security := nodeutil.Lookup(m, "security")
	if !nodeutil.IsSequence(security) {
		return
	}
	for _, requirement := range security.Content {
		for _, scheme := range nodeutil.Pairs(requirement) {
			names[scheme.Key] = true
		}
	}
}
