// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides presentation targets for rendered images.
//
// A Surface receives finished frames; it never draws. Keeping the
// presentation step behind an interface lets the same driver show frames
// in memory, write them to disk or hand them to a windowing backend that
// registers itself at init time.
//
// # Surface Types
//
//   - ImageSurface: keeps the last presented frame in memory
//   - FileSurface: writes every presented frame to a numbered file
//
// # Registry
//
// Backends register a factory under a name and a priority:
//
//	func init() {
//	    surface.Register("window", 100, newWindowSurface)
//	}
//
// NewSurface tries the backends from highest priority down and returns the
// first one that accepts the options; NewSurfaceByName picks one directly:
//
//	s, err := surface.NewSurfaceByName("file", surface.Options{
//	    Width: 1280, Height: 720, Dir: "frames",
//	})
//
// # Usage
//
//	s, err := surface.NewImageSurface(800, 600)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	img, _ := renderer.Render(shapes, maxDepth)
//	if err := img.Present(s); err != nil {
//	    log.Fatal(err)
//	}
//	last := s.Snapshot()
package surface
