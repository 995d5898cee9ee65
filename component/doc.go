// Package component presents several member documents as one configuration.
//
// A Meta lists the members by filename, with an optional alias and format,
// and one fallback order per operation kind: create, read, update and
// delete. ConfigData implements data.IndexedData over the members.
//
// A path whose first key carries a meta tag goes straight to the member the
// tag names, by filename or alias:
//
//	\{database\}\.host
//
// Any other path is tried against each member of the order for the
// operation until one succeeds. Modify first tries the update order without
// creating keys, then the create order. When every member fails, the
// not-found or type error that got deepest into its member is returned.
package component
