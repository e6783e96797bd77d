// Package manifest reads the HCL manifest describing an external build.
//
// The manifest lists the entry units the build emits, the output filename
// template that maps unit names to resources, and an optional common unit
// holding code shared by several entries:
//
//	output {
//	  filename = "[name].bundle.lua"
//	  path     = "dist"
//	}
//
//	entry "app1" { source = "./src/app1.lua" }
//	entry "app2" { source = "./src/app2.lua" }
//
//	common "common" {
//	  min_chunks = 3
//	}
//
// The manifest is advisory. The loader never rejects a name because it is
// missing from the manifest; such a unit simply fails when its resource
// cannot be found.
package manifest
