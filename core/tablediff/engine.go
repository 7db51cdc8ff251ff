package tablediff

import "slices"

// Compare matches the records of two snapshots by join key and classifies each one.
//
// Keys present in both snapshots are Modified when any significant field held
// by both records differs, otherwise Unchanged. Keys only in newSnap are
// Added and keys only in oldSnap are Deleted; those two classifications never
// depend on significant.
//
// Records are returned in ascending key order (see CompareKeys). Compare keeps
// no state between calls.
func Compare(oldSnap, newSnap *Snapshot, fields []string, significant FieldSelection) *Report {
	// Build union of all keys
	union := make(map[keyID]Value, len(oldSnap.keys)+len(newSnap.keys))
	for id, key := range oldSnap.keys {
		union[id] = key
	}
	for id, key := range newSnap.keys {
		union[id] = key
	}

	hasNumbers := false
	keys := make([]Value, 0, len(union))
	for _, key := range union {
		hasNumbers = hasNumbers || key.kind == KindNumber
		keys = append(keys, key)
	}
	// Numeric text keys sort with numeric keys when one side is typed.
	if hasNumbers {
		for i, key := range keys {
			keys[i], _ = numericKey(key)
		}
	}
	slices.SortFunc(keys, CompareKeys)

	report := &Report{
		Fields:      slices.Clone(fields),
		Significant: significant.Ordered(fields),
		Records:     make([]DiffRecord, 0, len(keys)),
		index:       make(map[keyID]int, len(keys)),
	}

	for _, key := range keys {
		oldRec, inOld := oldSnap.Get(key)
		newRec, inNew := newSnap.Get(key)

		rec := buildRecord(key, oldRec, inOld, newRec, inNew, fields, significant)
		report.index[idOf(key)] = len(report.Records)
		report.Records = append(report.Records, rec)
	}

	report.Summary = summarize(report)
	return report
}

// buildRecord classifies one key and computes its presentation cells.
func buildRecord(key Value, oldRec Record, inOld bool, newRec Record, inNew bool, fields []string, significant FieldSelection) DiffRecord {
	rec := DiffRecord{Key: key, Cells: make([]Cell, len(fields))}

	switch {
	case inOld && inNew:
		rec.Status = StatusUnchanged
		if isModified(oldRec, newRec, fields, significant) {
			rec.Status = StatusModified
		}
	case inNew:
		rec.Status = StatusAdded
	default:
		rec.Status = StatusDeleted
	}

	for i, f := range fields {
		newVal, hasNew := newRec.Get(f)
		oldVal, hasOld := oldRec.Get(f)

		if rec.Status == StatusModified && hasNew && hasOld && significant.Has(f) && !Equal(oldVal, newVal) {
			rec.Cells[i] = Cell{Value: newVal, Old: &oldVal, Changed: true}
			continue
		}

		switch {
		case hasNew:
			rec.Cells[i] = Cell{Value: newVal}
		case hasOld:
			rec.Cells[i] = Cell{Value: oldVal}
		default:
			rec.Cells[i] = Cell{Value: Null()}
		}
	}

	return rec
}

// isModified reports whether any significant field held by both records differs.
func isModified(oldRec, newRec Record, fields []string, significant FieldSelection) bool {
	for _, f := range fields {
		if !significant.Has(f) {
			continue
		}
		oldVal, hasOld := oldRec.Get(f)
		newVal, hasNew := newRec.Get(f)
		if hasOld && hasNew && !Equal(oldVal, newVal) {
			return true
		}
	}
	return false
}
