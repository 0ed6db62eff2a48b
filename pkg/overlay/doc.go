/*
The overlay package implements overlaysync's directory merge algorithm. Given
an ordered list of source directories and a single target directory, it
applies the creates, copies and removals needed for the target to reflect the
merged contents of the sources.

The algorithm runs in three steps:
1) Mapping -- Each source directory, and the target directory, is walked into
   a PathMap keyed by the path relative to the walked directory. Keys always
   use `/` as the separator, and the empty key is the walked directory itself.
2) Merging -- The source PathMaps are combined with the target PathMap. When
   several sources define the same key, the last source in the list wins, so
   later sources overlay earlier ones.
3) Updating -- The merged entries are visited in ascending key order. Since a
   parent's key is a strict prefix of its children's keys, directories are
   always created before anything is copied into them. Each entry results in
   at most one action (or a removal followed by a recreation when the source
   and target disagree on whether the path is a directory).

Files are only compared by type and modification time. A file is copied when
the source is at least as new as the target, and copies stamp the target with
the time of the copy, so a second pass with unchanged sources is a no-op.

All filesystem access goes through an afero.Fs supplied by the caller. The
package keeps no state between calls.
*/
package overlay
