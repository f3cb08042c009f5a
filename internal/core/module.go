package core

// ModuleID uniquely identifies a module within a namespace,
// e.g. "gateway.http" or "provider.openai".
type ModuleID string

// ModuleInfo describes a registered module: its ID and a constructor
// returning a fresh, unconfigured instance.
type ModuleInfo struct {
	ID  ModuleID
	New func() Module
}

// Module is the minimal interface every module implements. Lifecycle
// behavior is added via the optional interfaces in lifecycle.go.
type Module interface {
	ModuleInfo() ModuleInfo
}
