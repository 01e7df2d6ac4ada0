// Package config provides the merger's run configuration: input and
// output locations, the fiscal-year range, logging settings, and the
// canonical-to-source column mapping shared by every partition.
//
// Configuration is resolved once at startup from defaults, an optional
// config.yaml, and SPEND_-prefixed environment variables (environment
// wins), then validated. The resulting Config is passed explicitly into
// the discovery, cleaning, and export steps so the pipeline stays
// testable without ambient state.
package config
