package envr

import "github.com/paiml/ruchy-sub009/value"

// Frame is a single activation record in the De Bruijn-indexed chain:
// one slot per name canon's scope.push bound at that nesting level, in
// the same left-to-right order canon assigned indices.
type Frame struct {
	Values []value.Value
	Parent *Frame
}

// PushFrame extends chain with a new frame holding values.
func PushFrame(parent *Frame, values []value.Value) *Frame {
	return &Frame{Values: values, Parent: parent}
}

// Get resolves a canon.CVar{Depth,Index} pair: walk out depth frames,
// then index into that frame's Values.
func (f *Frame) Get(depth, index int) value.Value {
	cur := f
	for i := 0; i < depth; i++ {
		cur = cur.Parent
	}

	return cur.Values[index]
}

// Set mutates a binding in place through a De Bruijn reference. The
// evaluator does not call it: reassignment binds a new frame (see
// eval.evalLet) and updates a mutable session binding via Scope.Assign.
func (f *Frame) Set(depth, index int, v value.Value) {
	cur := f
	for i := 0; i < depth; i++ {
		cur = cur.Parent
	}
	cur.Values[index] = v
}
