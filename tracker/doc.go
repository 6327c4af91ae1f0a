/*
Package tracker maintains stable identities for sparse colored markers
across video frames.

A vision front-end supplies per frame candidate detections (centroid
plus circularity).  Each Update pass predicts every live point's next
position from its motion history, builds a probable search region
around the prediction (a triangular cone widening with speed, or a
fixed radius circle when no direction is known), then solves a global
minimum cost assignment between points and the candidates inside their
regions.  Matched points refresh their history and health, unmatched
points decay and eventually expire, and unmatched candidates spawn new
points.

The tracker is frame sequential and single threaded.  It exclusively
owns its point set, consumers read snapshots between passes and never
mutate them.  Run one Tracker per camera and merge downstream.
*/
package tracker
