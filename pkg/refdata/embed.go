package refdata

import _ "embed"

// defaultsYAML carries the reference data shipped with the binary. It
// mirrors the master system's category table and the rule set curated by
// the data-entry team.
//
//go:embed defaults.yaml
var defaultsYAML []byte
