// Package version holds build metadata, set via -ldflags at build time.
// Replaces the teacher's keshon/buildinfo dependency (a private,
// org-scoped module) with an in-repo equivalent exposing the same fields.
package version

var (
	// Version is the semantic version, e.g. "v0.3.0". "dev" when unset.
	Version = "dev"
	// Commit is the short git commit hash baked in at build time.
	Commit = "unknown"
	// BuildDate is the RFC3339 build timestamp baked in at build time.
	BuildDate = "unknown"
)

// String renders a single-line "version (commit, built date)" summary.
func String() string {
	return Version + " (" + Commit + ", built " + BuildDate + ")"
}
