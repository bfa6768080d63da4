/*
Package jhobby finds smooth curves through a sequence of knots in the plane,
using John Hobby's spline interpolation algorithm as known from MetaFont
and MetaPost. The resulting chains of cubic Bezier curves may be evaluated,
tesselated into line meshes, or turned into polygon outlines.

Hobby splines are aesthetically pleasing and need no control point input.
The primary source of information is:

	Smooth, Easy to Compute Interpolating Splines -- John D. Hobby
	Computer Science Dept. Stanford University
	Report No. STAN-CS-85-1047, Jan 1985

The practical algorithm is explained in Computers & Typesetting, Vol. B & D.
The notation sticks closely to MetaFont.

# Usage

Clients build a "skeleton" path, without any control point information.
It may carry parameters at knots and joins. The MetaFont path

	(0,0)..(2,3)..tension 1.4..(5,3)..(3,-1){left}..cycle

translates to (package qualifiers omitted):

	Nullpath().Knot(P(0,0)).Curve().Knot(P(2,3)).TensionCurve(1.4,1.4).Knot(P(5,3)).
	   Curve().DirKnot(P(3,-1),P(-1,0)).Curve().Cycle()

FindHobbyControls(...) calculates the control points, which Curves(...)
turns into Bezier curves. Smooth(...) does both in one step:

	curves, err := Smooth(path)

Knots with a curl other than 1, with two different directions, or at
either end of a straight Line() are breakpoints. The path is solved in
segments between breakpoints.

Control points cannot be set explicitly.

# BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package jhobby
