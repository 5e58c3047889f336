package seeddata

import _ "embed"

//go:embed reference.yaml
var ReferenceYAML []byte
