// Package s3 provides a minimal client for S3-compatible object storage.
//
// It is used to archive run reports. A custom endpoint (MinIO, Ceph, other
// S3-compatible stores) switches the client to path-style addressing.
package s3
