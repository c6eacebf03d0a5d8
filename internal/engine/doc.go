// Package engine keeps the five abort quantities consistent.
//
// An [Engine] owns the current [State], an immutable snapshot holding one
// [Record] per quantity and the quantity currently treated as output. Two
// operations mutate it:
//
//   - [Engine.SetInput]: replace a free quantity and recompute the output
//   - [Engine.SetOutputTarget]: make another quantity the output and compute it
//
// Each operation builds a new snapshot, clamps the freshly computed output to
// its range and publishes the snapshot with a single assignment. The returned
// snapshot is the one a UI should render from.
//
// # Example
//
//	e := engine.New(engine.DefaultState())
//	st, err := e.SetInput(margin.Buffer, 10)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(st.Value(margin.Angle))
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. They are meant to be driven from a
// single event loop.
package engine
