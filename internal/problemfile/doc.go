// Package problemfile loads problem markdown files. A file may start with a
// YAML front matter block carrying the problem settings; the rest of the
// file is the editor markdown handed to the converter.
package problemfile
