// Package config holds the userkeeper CLI settings.
//
// Values are resolved in order, each layer overriding the previous one:
// LoadDefaults, a JSON file named by -c or -config, then the short flags
//
//	-s string   API base URL, e.g. http://127.0.0.1:5000
//	-t int      per-request timeout in seconds
//	-i int      seconds between reachability probes
//
// Durations in the JSON file may be strings ("10s") or nanoseconds:
//
//	{"server_url": "http://127.0.0.1:5000", "request_timeout": "10s", "online_check_interval": "3s"}
package config
