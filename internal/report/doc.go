// Package report is the accumulator threaded through every validation
// check. Checks append findings and always run to completion; the report is
// sorted by stable keys and rendered once at the end of the pass.
package report
