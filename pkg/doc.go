// Package pkg provides the core libraries for Boxdeform cage deformation.
//
// # Overview
//
// Boxdeform frames the selected points of a stroke drawing in a flat lattice
// cage aligned with the viewport, lets the user reshape the cage and bakes the
// deformation back into the drawing. The pkg directory is organized into
// three areas:
//
//  1. Geometry - [geom] projection and transforms, [cage] building and
//     evaluating cages
//  2. Session - [session] the modal state machine, with [binding] and [prefs]
//     managing the host state a session borrows
//  3. Host - [host] the shared vocabulary, [scene] an in-memory host and [io]
//     its JSON documents
//
// Supporting packages: [config] (TOML and environment settings), [errors]
// (error codes), [observability] (session hooks) and [buildinfo].
//
// # Architecture
//
// The typical flow of a session:
//
//	Scene document
//	      ↓
//	 [io] package (load scene)
//	      ↓
//	 [session] Controller.Start (gather points, build cage, bind, enter cage edit)
//	      ↓
//	 [session] Session.Handle (resolution, interpolation, confirm or cancel)
//	      ↓
//	 [scene] Bake or Discard
//	      ↓
//	 [io] package (write scene)
//
// # Quick Start
//
//	s, _ := io.ImportJSON("drawing.json")
//	ctl := session.NewController(s, session.NewRegistry(), config.Default(), nil)
//	sess, _ := ctl.Start(ctx)
//	ev, _ := session.ParseEvent("3")
//	sess.Handle(ctx, ev)
//	ev, _ = session.ParseEvent("enter")
//	sess.Handle(ctx, ev)
//	_ = io.ExportJSON(s, "out.json")
package pkg
