// Package io provides JSON import and export for trend collections.
//
// # Overview
//
// This package enables moving a curated trend set between machines and
// tools. The format is designed for:
//
//   - Sharing a curated board between curators
//   - Backups of the working set before a bulk fetch
//   - Integration with external tools that produce or consume trend data
//   - Round-trip preservation: export and re-import identically
//
// # JSON Format
//
// The format is a versioned envelope around a trends array:
//
//	{
//	  "version": 1,
//	  "exported_at": "2026-08-25T12:00:00Z",
//	  "trends": [
//	    {"id": "…", "name": "amapiano", "category": "music", "size": 60}
//	  ]
//	}
//
// Trend fields follow [board.Trend]; unknown fields are ignored so the
// format can grow without breaking older readers.
//
// # Import
//
// Use [ImportJSON] to read trends from a file path, or [ReadJSON] to
// read from any io.Reader. Both validate the envelope version and each
// trend's name and size; errors name the offending entry.
//
// # Export
//
// Use [ExportJSON] to write trends to a file, or [WriteJSON] to write
// to any io.Writer.
package io
