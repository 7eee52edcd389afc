// Package content defines the published entity model (units, episodes,
// activities, questions) and the YAML document schema the publisher reads
// from disk.
//
// Documents are decoded once and run through a single normalization step
// that applies every default (id from the file or directory name, title from
// id, version 1, locale en-US, empty question list) so downstream code never
// re-derives fallbacks. The package also owns fully-qualified identifier
// composition: local ids are chained with a reserved separator, and no id
// component may contain that separator.
package content
