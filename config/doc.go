// Package config loads and validates the whisperd configuration.
//
// Sources are merged in precedence order: explicit config.yml, then .env
// file, then process environment (WHISPERD_ prefix). The legacy environment
// names of the original daemon (WHISPER_MODEL, XDG_CACHE_HOME, DEBUG) are
// honored as overrides so existing deployments keep working.
package config
