// Package freebusy computes free time slots from busy calendar intervals
// using a single interval-merge sweep.
package freebusy
