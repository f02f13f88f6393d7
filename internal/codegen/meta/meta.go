package meta

import "github.com/wuespace/mavgen/internal/mavlink"

// Metadata holds everything renderers need besides the message itself.
// Shared between the generator orchestrator and the language renderers.
type Metadata struct {
	Source         string          // schema file the messages were loaded from
	Package        string          // target package / namespace, e.g. "org.telestion.adapter.mavlink.message"
	RuntimePackage string          // package of the runtime annotations and base interface (Java)
	Version        string          // generator version stamped into outputs
	Includes       []string        // <include> entries of the schema
	Dialect        mavlink.Dialect // dialect the messages were loaded with
}
