// Package environment names the deployment environments and parses them from
// configuration values. The logger uses it to pick per-environment defaults.
package environment
