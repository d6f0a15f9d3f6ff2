// Package linkage computes the positions of a planar four-bar linkage with an
// extended coupler point, and the curve that point traces as the crank turns.
//
// # The linkage
//
// Two fixed pivots P1 = (0, 0) and P2 = (R1, 0) form the ground link. The crank
// of length R2 turns about P1 and ends in joint A; the rocker of length R4
// turns about P2 and ends in joint B; the coupler of length R3 joins A and B.
// The coupler point C is rigidly attached to the coupler, R6 away from A, at
// an angle Beta from the direction A→B. [Config] holds these parameters and
// the driver angle Theta2. Lengths share one arbitrary unit and all angles are
// in degrees, measured counter-clockwise from the positive x axis.
//
// # Solving
//
// [Solve] places every joint for one driver angle. Joint B lies on the
// intersection of two circles, which has up to two points; [AssemblyMode]
// picks one of them. When the circles do not meet, the linkage cannot be
// assembled at that angle and Solve returns a [Pose] whose Valid field is
// false and whose moving joints are NaN. [Assemble] reports the same situation
// as an error.
//
// [Sample] solves a linkage over a full turn of the crank and returns the
// valid poses as a [Trajectory]. Trajectories have gaps where the linkage
// breaks; [Trajectory.Runs] splits them into their contiguous parts.
// [TrajectoryCache] memoizes Sample for interactive use, where only the driver
// angle changes between frames.
//
// [Config.Classify] returns the Grashof class of a linkage, which tells
// without sampling whether the crank can turn fully.
//
// # Geometry
//
// The package carries the small set of planar primitives the solver and its
// renderers need: [Point], [Vec2], [Line], [Circle], [Rect], [Size], [Affine]
// and [Path]. Points use a y-up coordinate system. [FitTransform] maps a
// region of the linkage plane onto a y-down viewport, and [Path.WriteSVG]
// writes path data for SVG documents.
package linkage
