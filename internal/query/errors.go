package query

// ParseError reports query input the compiler rejects: an unknown filter
// token, an unknown sorting rule, or more than one sorting rule. It is
// always caused by user input and always recoverable.
type ParseError struct {
	Msg string
}

// Error returns the error message.
func (e *ParseError) Error() string { return e.Msg }

// InternalError reports an inconsistency in the filter vocabulary itself,
// such as a registered attribute that belongs to no facet. It is never
// caused by user input.
type InternalError struct {
	Msg string
}

// Error returns the error message.
func (e *InternalError) Error() string { return e.Msg }
