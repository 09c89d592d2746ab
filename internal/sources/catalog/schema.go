package catalog

// SeedDestination maps a destination name to its hotels.
// The YAML structure is: - Destination: [ { CODE: Hotel name }, ... ]
// Each hotel is a single-entry map so the file reads like the program's own list.
type SeedDestination map[string][]map[string]string

// SeedConfig is the root structure for hotels.yaml
type SeedConfig []SeedDestination
