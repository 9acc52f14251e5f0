// Package config provides loading and environment overlay for the slotlist
// CLI configuration. It exposes a Default() baseline, Load() for JSON or TOML
// files, and FromEnv() for SLOTLIST_* overrides.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/slotlist.toml"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
package config
