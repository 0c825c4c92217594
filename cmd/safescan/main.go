// Package main provides the entry point for the SafeScan CLI.
//
// SafeScan classifies text, a single URL, or an email-like message as safe
// or unsafe using an embedded linear model and static URL heuristics. It
// never contacts the network.
//
// Usage:
//
//	safescan scan "Your account is locked, verify at http://login-bank.example"
//	safescan scan --list <file>
//	safescan history
//
// See --help for all available options.
package main

// main is the entry point for SafeScan.
func main() {
	Execute()
}
