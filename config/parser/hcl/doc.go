// Package hcl provides an HCL codec for the config package, built on
// github.com/hashicorp/hcl/v2 and github.com/zclconf/go-cty.
//
// A document such as
//
//	name = "app"
//
//	server "public" {
//	  port = 8080
//	}
//
// decodes to
//
//	map[string]any{"name": "app", "server": map[string]any{"public": map[string]any{"port": int64(8080)}}}
package hcl
