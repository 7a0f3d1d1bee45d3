// Package all imports all core sitenav extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/sitenav/extension/core"
	_ "github.com/jpl-au/sitenav/extension/nav"
	_ "github.com/jpl-au/sitenav/extension/publish"
)
