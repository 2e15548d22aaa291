package pictograph

// Version is the release of the engine. It is overridden at build time with
// -ldflags "-X github.com/aretw0/pictograph.Version=...".
var Version = "0.1.0-dev"
