package app

// Build metadata, injected via -ldflags at build time.
// 构建元信息，通过 -ldflags 注入
var (
	Version   = "dev"
	GitTag    = ""
	BuildTime = ""
)

// Name service name
const Name = "Shared Notes Service"
