package source

import (
	"context"
	"fmt"

	"table-compare/core/storage"
	"table-compare/core/tablediff"

	"github.com/minio/minio-go/v7"
)

// ObjectDataset is a CSV object in a storage bucket. The object is fetched
// through the cache on open and on every Scan.
type ObjectDataset struct {
	client storage.Client
	bucket string
	object string
	cache  *Cache
	fields []tablediff.Field
}

// OpenObject downloads and parses the header of a CSV object.
func OpenObject(ctx context.Context, client storage.Client, bucket, object string, cache *Cache) (*ObjectDataset, error) {
	d := &ObjectDataset{client: client, bucket: bucket, object: object, cache: cache}
	table, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	d.fields = table.Fields
	return d, nil
}

func (d *ObjectDataset) cacheKey() string {
	return d.bucket + "/" + d.object
}

func (d *ObjectDataset) load(ctx context.Context) (*Table, error) {
	return d.cache.GetOrLoad(ctx, d.cacheKey(), func(ctx context.Context) (*Table, error) {
		obj, err := d.client.GetObject(ctx, d.bucket, d.object, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to get object %s: %w", d.cacheKey(), err)
		}
		defer obj.Close()

		table, err := ParseCSV(ctx, obj)
		if err != nil {
			return nil, fmt.Errorf("failed to parse object %s: %w", d.cacheKey(), err)
		}
		return table, nil
	})
}

// Name returns the bucket-qualified object name.
func (d *ObjectDataset) Name() string { return "s3://" + d.cacheKey() }

// Fields returns the header fields read on open.
func (d *ObjectDataset) Fields() []tablediff.Field { return d.fields }

// Scan streams the object rows.
func (d *ObjectDataset) Scan(ctx context.Context, fn func(tablediff.Record) error) error {
	table, err := d.load(ctx)
	if err != nil {
		return err
	}
	for i, rec := range table.Records {
		if i%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}
