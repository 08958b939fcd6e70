package seed

// File is the top-level structure of a seed file:
//
//	recommendations:
//	  - title: Ghost
//	    url: https://ghost.org
//	    reason: ${GHOST_REASON}
//
// Entries stay loosely typed so they go through the same validation as
// API requests.
type File struct {
	Recommendations []any `yaml:"recommendations"`
}
