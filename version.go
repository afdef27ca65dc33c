package idx

// Version is the release of the idx binaries. Overridden at build time with
// -ldflags "-X github.com/aretw0/idx.Version=...".
var Version = "0.1.0"
