// Package rating contains the write-once rating records. A delivery rating
// scores the delivery person for one delivered order; a menu item rating
// scores one ordered item. Both feed the aggregate recomputation on the
// courier and menu item sides.
package rating
