// Package timeparse turns loose natural-language time text ("5pm
// tomorrow", "Thursday at 6pm") into instants, and extracts the weekday
// and clock filters some queries carry.
package timeparse
