// Package file provides file-based data access for the config package.
//
// Fetcher implements config.DataFetcher. The file is read at construction
// time and cached, so subsequent calls to Fetch return the same data without
// re-reading the filesystem.
//
// Dir reads the member files of a component relative to its directory, and
// its Read method satisfies config.Opener. Write replaces a file atomically
// and is used to persist modified documents.
//
// Usage:
//
//	fetcher, err := file.NewFetcher("/path/to/config.yaml")()
//	if err != nil {
//	    // Handle error: file not found, permission denied, path is directory, etc.
//	}
//	data, err := fetcher.Fetch()
//
//	members := file.NewDir("/etc/app/component")
//	meta, err := members.Read("meta.yaml")
//
// Errors include the filepath. Use errors.Is(err, file.ErrPathIsDirectory)
// to check for directory errors.
package file
