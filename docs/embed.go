// Package docs bundles the OpenAPI document served under /openapi.yaml,
// /openapi.json and /docs.
package docs

import _ "embed"

//go:embed openapi.yaml
var OpenAPISpec []byte
