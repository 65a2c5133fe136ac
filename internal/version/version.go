package version

// AppVersion is overridden at build time with
// -ldflags "-X pentu/internal/version.AppVersion=..."
var AppVersion = "2.0.0"
