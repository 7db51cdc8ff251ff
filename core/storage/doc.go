// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the operations
// table-compare needs: reading CSV dataset objects, listing them, and uploading
// comparison exports. This abstraction supports both AWS S3 and self-hosted MinIO.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: EnsureBucket creates the export bucket on demand.
//   - PutObject: Uploads comparison exports.
//   - GetObject: Streams CSV dataset objects.
//   - ListObjects: ListKeys lists the CSV datasets available under a prefix.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	keys, err := storage.ListKeys(ctx, client, "datasets", "parcels/", ".csv")
package storage
