/*
Package config loads the rewrite settings from YAML, HCL or JSON files.

🎯 Purpose:
- Picks a parser by file extension through a small registry
- Rejects unknown keys in every format
- Fills in defaults and validates values in one place

📝 Defaults:
- dirs: ["css"], relative to the packaged app directory
- rules: app:///fonts -> app://./fonts
- on_error: abort
- concurrency: 1

🔍 Example (YAML):

	dirs: [css, vendor/css]
	on_error: continue
	rules:
	  - search: "app:///fonts"
	    replace: "app://./fonts"

🔍 Example (HCL):

	dirs    = ["css"]
	exclude = [env.SKIP_GLOB]

	rule {
	  search  = "app:///fonts"
	  replace = "app://./fonts"
	}

HCL files can read the process environment through the env object.
*/
package config
