// Package report serializes stage reports and archives them.
//
// A report is written as JSON or YAML depending on the file extension, and
// can be uploaded to an S3-compatible bucket under a time-stamped key.
package report
