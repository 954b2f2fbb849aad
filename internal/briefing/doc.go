// Package briefing computes and renders the minimal context slice for one
// target node: the single Goal→Solution→Implementation path it sits on,
// with constraints and descriptions carried along. Rendering is
// deterministic so repeated runs over an unchanged graph are byte
// identical.
package briefing
