// Package hook provides the shared lifecycle-announcement fragments spliced
// into build phases. Centralizing them here keeps per-build reporting
// identical across all language builders.
package hook

import "fmt"

// SystemInfo returns the environment banner printed at the start of a build.
func SystemInfo() string {
	return "--- build environment ---\nuname -a\n-------------------------"
}

// BuildAnnounce returns the announcement for the start of the compile phase.
func BuildAnnounce(language, variant, name string) string {
	return fmt.Sprintf(">>> building %s (%s, %s variant)", name, language, variant)
}

// InstallAnnounce returns the announcement for the install phase.
func InstallAnnounce(name, path string) string {
	return fmt.Sprintf(">>> installing %s -> %s", name, path)
}

// TestAnnounce returns the announcement for the test phase.
func TestAnnounce(name string) string {
	return fmt.Sprintf(">>> testing %s", name)
}

// VersionProbe returns a labeled toolchain version report line. The command's
// version output is meant to be substituted for the probe at execution time.
func VersionProbe(command, label string) string {
	return fmt.Sprintf("%s: $(%s --version)", label, command)
}
