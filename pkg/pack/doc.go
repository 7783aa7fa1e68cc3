// Package pack runs the path rewrite as an after-pack step of an application
// packaging pipeline. The pipeline passes the unpacked application directory,
// and the hook rewrites the files directly under its css subdirectory.
package pack
