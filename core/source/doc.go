// Package source opens the datasets compared by table-compare.
//
// A dataset is addressed by a locator string:
//
//	data/old.csv, file:data/old.csv   local CSV file
//	s3:parcels/2024.csv               CSV object in the storage bucket
//	db:parcels_2024                   database table
//
// CSV sources take their schema from the header row and read every cell as a
// string, leaving numeric comparison to tablediff.Equal. Empty cells are null.
// Table sources take their schema from database.GetTableColumns and keep the
// driver's value types.
//
// Storage objects are parsed once and kept in a Cache for its TTL. Concurrent
// loads of the same object are collapsed with singleflight.
package source
