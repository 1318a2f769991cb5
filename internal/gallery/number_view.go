package gallery

import "strconv"

// StateKey is the field a NumberView saves its number under.
const StateKey = "number_state"

// NumberView is one page of a gallery. It displays a single integer and
// keeps that integer across a save/restore cycle of its own.
type NumberView struct {
	number  int
	text    string
	renders int
}

func NewNumberView(number int) *NumberView {
	v := &NumberView{number: -1}
	v.Show(number)
	return v
}

func (v *NumberView) Show(number int) {
	v.number = number
	v.render()
}

func (v *NumberView) Number() int {
	return v.number
}

func (v *NumberView) Text() string {
	return v.text
}

// Renders counts how many times the view rebuilt its visual state.
func (v *NumberView) Renders() int {
	return v.renders
}

func (v *NumberView) SaveState() map[string]int {
	return map[string]int{StateKey: v.number}
}

// RestoreState reapplies a saved number. A nil state keeps the current one.
func (v *NumberView) RestoreState(state map[string]int) {
	if state != nil {
		if n, ok := state[StateKey]; ok {
			v.number = n
		}
	}
	v.render()
}

func (v *NumberView) render() {
	v.text = strconv.Itoa(v.number)
	v.renders++
}
