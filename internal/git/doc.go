// Package git reads revision information from the repository that holds the
// documented sources, so built pages can be stamped with the commit they were
// generated from.
package git
