// Package main provides the chartopts CLI for converting, checking and
// exporting chart option documents.
package main

func main() {
	Execute()
}
