// Package capability decides whether an output target supports color,
// emoji and unicode box drawing.
//
// Each capability is configured with a Mode. Enabled and Disabled are
// absolute overrides; Auto defers to a Detector, which reads whether the
// target is an interactive terminal and what the environment claims
// (NO_COLOR, FORCE_COLOR, TERM, COLORTERM and the locale variables).
//
// Detection has no side effects and never fails. A writer that is not a
// file, or an environment that cannot be read, resolves to unsupported.
package capability
