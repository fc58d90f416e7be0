// Package cli translates command-line arguments into an app.Config and owns
// nothing else. Flag validation errors carry explicit exit codes via
// ExitError so main can exit precisely without importing os here.
package cli
