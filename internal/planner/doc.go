// Package planner turns analysed cursor contexts into edit plans.
//
// There is one planner per editing intent:
//
//   - Continue (Enter) keeps a new line inside the comment the cursor is in.
//   - Align (Tab) pads comment text out to the comment style's column.
//   - Toggle (Inline) comments or uncomments the lines under each cursor.
//
// A planner either produces a Plan that consumes the event or abstains,
// letting the host run its default key behaviour. Abstained plans carry no
// edits. Plans are expressed in the coordinates of the buffer as it was
// before the event; the dispatcher corrects for drift when it commits them.
package planner
