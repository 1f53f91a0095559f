// Package checksum provides SHA-256 content hashing.
//
// Checksums are lowercase hex strings. They identify file content in scan
// results and back the content comparison used to verify copies.
//
// # Example Usage
//
//	calculator := checksum.New()
//	sum := calculator.CalculateRaw(fileContent)
//
//	same, err := checksum.SameContent(fsys, "a.txt", "b.txt")
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
