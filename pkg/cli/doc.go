// Package cli implements the command-line interface for the sema tool.
//
// # Commands
//
// generate - resolve every service in a spec and emit dashboard artifacts:
//
//	sema generate --spec services.yaml [--output FILE|cm://ns/name] [--format yaml|json|table]
//
// resolve - run one ad-hoc resolution pass for a single service:
//
//	sema resolve --service orders-db --selector 'job="orders-db"' --tech postgres
//
// discover - inspect the live metric inventory for a selector:
//
//	sema discover --selector 'job="orders-db"'
//
// intents - list the intent catalog, optionally scoped to a technology:
//
//	sema intents [--tech postgres]
//
// # Global Flags
//
//	--config       Config file path (default: sema.yaml when present)
//	--log-level    Log level: debug, info, warn, error (default: info)
package cli
