// Package io provides JSON import and export for box deform scenes.
//
// # Overview
//
// A scene document describes the objects a session can run on, the camera,
// the interaction mode and the host's ambient settings. The format is
// designed for:
//
//   - Scripting sessions headlessly (boxdeform apply)
//   - Inspecting the result of a session, including baked point positions
//   - Round-trip preservation: import, deform, export, and re-import
//
// # JSON Format
//
//	{
//	  "mode": "edit",
//	  "active": "pen",
//	  "camera": {"eye": [0, 0, 10], "target": [0, 0, 0], "up": [0, 1, 0],
//	             "half_height": 1, "width": 80, "height": 40},
//	  "objects": [
//	    {
//	      "id": "pen",
//	      "name": "Pen",
//	      "layers": [
//	        {"name": "Lines", "active_frame": 0, "frames": [
//	          {"number": 1, "strokes": [
//	            {"select": true, "points": [
//	              {"co": [0, 0, 0], "select": true},
//	              {"co": [1, 0, 0], "select": true}
//	            ]}
//	          ]}
//	        ]}
//	      ]
//	    }
//	  ]
//	}
//
// # Object Fields
//
// Required:
//   - name: display name (at most 63 characters)
//
// Optional:
//   - id: unique identifier (a UUID is generated if omitted)
//   - kind: "strokes" (default) or "mesh"
//   - matrix: 16 numbers, row-major object-to-world transform (identity if omitted)
//   - active_layer: index of the active layer (default 0, -1 for none)
//   - multi_frame_edit, draw_on_back: gathering switches
//   - groups: named point groups as [layer, frame, stroke, point] tuples
//   - deformers: lattice deformers with their cage
//
// A layer's active_frame defaults to 0 and may be -1 when the layer has no
// drawing on the current frame.
//
// # Camera
//
// fov_y is the vertical field of view in degrees; omit it (or use 0) for an
// orthographic camera half_height units tall.
//
// # Import
//
// Use [ImportJSON] to read a scene from a file path, or [ReadJSON] to read
// from any io.Reader. Both validate references (active object, active layer
// and frame indices, group members) and reject duplicate object IDs.
//
// # Export
//
// Use [ExportJSON] to write a scene to a file, or [WriteJSON] to write to any
// io.Writer. Everything the import reads is written back.
package io
