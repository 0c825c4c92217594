// Package config provides configuration structures and utilities for SafeScan.
// It defines analysis limits, history settings, report preferences, and the
// lookup of the optional .safescan file and .env overrides.
package config
