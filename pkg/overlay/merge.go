package overlay

import (
	"path/filepath"
	"sort"
)

// A MergedEntry pairs the winning source for a relative path with the
// corresponding path in the target directory.
type MergedEntry struct {
	// SourcePath is empty when no source directory contains the path.
	SourcePath  string
	SourceStats *FileMetadata

	// TargetPath is set even when nothing exists at the target yet.
	TargetPath  string
	TargetStats *FileMetadata
}

// MergedPathMap is the work list for a sync, keyed by relative path.
type MergedPathMap map[string]MergedEntry

// Keys returns the relative paths in ascending order. Parents sort before
// their children because a parent's key is a prefix of its children's keys.
func (merged MergedPathMap) Keys() []string {
	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// MergePathMaps combines the source maps with the target map. When multiple
// sources contain the same key, the source that appears last in `sourceMaps`
// wins.
func MergePathMaps(sourceMaps []PathMap, targetMap PathMap, targetRootDir string) MergedPathMap {
	merged := MergedPathMap{}
	add := func(key string) {
		if _, ok := merged[key]; ok {
			return
		}

		entry := MergedEntry{
			TargetPath: joinKey(targetRootDir, key),
		}
		if target, ok := targetMap[key]; ok {
			entry.TargetStats = target.Metadata
		}

		for _, sourceMap := range sourceMaps {
			if source, ok := sourceMap[key]; ok {
				entry.SourcePath = joinKey(source.OwnerDir, key)
				entry.SourceStats = source.Metadata
			}
		}
		merged[key] = entry
	}

	for key := range targetMap {
		add(key)
	}
	for _, sourceMap := range sourceMaps {
		for key := range sourceMap {
			add(key)
		}
	}
	return merged
}

func joinKey(dir, key string) string {
	return filepath.Join(dir, filepath.FromSlash(key))
}
