// Package event provides the scraped date entry type, target matching, and the
// digest used for cycle-to-cycle change detection.
//
// Entries are ephemeral: the scraper rebuilds the full list every cycle and the
// watcher compares only the rendered digest lines, never past entries.
package event
