// Package app contains the core application logic of the TSV checker. It
// defines the main App struct, its configuration, and the check lifecycle,
// decoupled from any specific entrypoint like a CLI.
package app
