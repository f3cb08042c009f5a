package main

// Compiled-in modules. Each import registers itself with the core registry.
import (
	_ "github.com/axtarget/axtarchat/internal/cron"
	_ "github.com/axtarget/axtarchat/internal/gateway"
	_ "github.com/axtarget/axtarchat/internal/telemetry"
	_ "github.com/axtarget/axtarchat/modules/provider/openai"
	_ "github.com/axtarget/axtarchat/modules/search/duckduckgo"
	_ "github.com/axtarget/axtarchat/modules/stats/sqlite"
)
