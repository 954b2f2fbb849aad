// Package inventory reconciles the declared artifact inventory with the
// actual filesystem, in both directions: declared files and symbols must
// exist (top-down), and every recognized source file under the code roots
// must be claimed (bottom-up). The filesystem is only ever read.
package inventory
