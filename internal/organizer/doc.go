// Package organizer scans folders for documents and moves them into tag
// folders without overwriting anything already there.
package organizer
