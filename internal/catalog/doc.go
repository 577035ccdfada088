// Package catalog enumerates the fixed set of podcasts the pipeline manages.
//
// Each entry maps a CLI key to its local folder name, RSS feed URL, and the
// folder and filename prefix used by the official transcript and show-notes
// repositories. The catalog is static data; there is no runtime discovery.
package catalog
