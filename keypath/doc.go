// Package keypath implements the path language used to address values inside
// nested configuration data.
//
// A path is a sequence of keys. Every syntax character is introduced by a
// backslash, so plain dots, brackets and braces are ordinary characters:
//
//	\.name          attribute key "name"
//	\[3\]           index key 3
//	\{meta\}\.name  attribute key "name" carrying the meta tag "meta"
//	\\              a literal backslash
//
// The first segment may omit its leading \. separator. Such paths are still
// accepted, but a deprecation warning is logged through log/slog.
//
// Examples:
//
//	\.a.a\\.a\.b\[18\]\[07\]\.e  -> [Attr("a.a\.a"), Attr("b"), Index(18), Index(7), Attr("e")]
//	\{meta\}\.aaa\{meta\}\[0\]   -> [Attr("aaa"){meta}, Index(0){meta}]
//
// Keys also carry the capability protocol used by the traversal engine in
// package data: a key can report whether a container supports it, whether it
// is present, and get, set or delete the element it names.
package keypath
