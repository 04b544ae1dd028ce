// Package cmd implements the gworkspace command line.
//
// Commands:
//   - serve: run the server over stdio or HTTP (the default command)
//   - accounts list|remove: inspect and remove stored credentials
//   - auth url|complete: authorize an account from the terminal
//   - tools: print the operation catalog as markdown
//   - version: print the build version
package cmd
