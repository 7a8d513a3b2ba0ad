package browse

// navError reports input that matches no action on the current screen, like
// a selection outside the listed range. It is a user mistake, not a fault;
// dismissing it returns to the screen the input was typed on.
type navError struct {
	msg string
}

// Error returns the message.
func (e *navError) Error() string {
	return e.msg
}
