package types

// Version is the application version, overridden at build time via ldflags
var Version = "dev"

// AppName is used for log fields and the CLI command name
const AppName = "build-publish"
