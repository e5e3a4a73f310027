package syntax

// Transition is what a machine reports after being fed a code.
type Transition uint8

const (
	// Continue asks for the next code. If the machine did not consume the
	// code it was fed, the same code is fed again.
	Continue Transition = iota

	// Match ends the construct successfully after whatever was consumed.
	Match

	// Fail rejects the construct. Everything it did is rewound.
	Fail
)

// String returns the transition name.
func (t Transition) String() string {
	switch t {
	case Continue:
		return "continue"
	case Match:
		return "match"
	case Fail:
		return "fail"
	default:
		return "unknown"
	}
}

// Machine recognizes a construct one code at a time.
type Machine interface {
	Feed(code Code) Transition
}

// Effects is the output sink a machine writes tokens to.
type Effects interface {
	// Enter opens a token at the current point.
	Enter(kind TokenKind) *Token

	// Exit closes the innermost open token, which must be of kind.
	Exit(kind TokenKind) *Token

	// Consume accepts the code being fed.
	Consume(code Code)
}

// Context is the read side of the tokenizer a machine runs in.
type Context interface {
	// Events returns the events emitted so far.
	Events() []Event

	// SliceSerialize returns the source text of tok.
	SliceSerialize(tok *Token) string

	// State returns the per-parse state.
	State() *ParseState

	// ContainerState returns the state of the container being started or
	// continued. It is nil outside the document phase.
	ContainerState() *ContainerState

	// Check runs c from the current point and reports whether it would
	// match, without consuming anything or keeping its events.
	Check(c *Construct) bool

	// ResolveInsideSpan runs the resolvers that apply to the inside of a
	// span construct.
	ResolveInsideSpan(events []Event) []Event

	// Now returns the point of the code about to be fed.
	Now() Point
}

// ContainerState is scratch space owned by one open container.
type ContainerState struct {
	Data any
}

// Resolver rewrites the event stream.
type Resolver func(events []Event, ctx Context) []Event

// Construct is something the tokenizer can attempt at a given code.
type Construct struct {
	Name string

	// Tokenize creates a fresh machine for one attempt.
	Tokenize func(ctx Context, fx Effects) Machine

	// Continuation is attempted at the start of each following line of an
	// open container. Only document constructs have one.
	Continuation *Construct

	// Exit closes a container. It receives effects positioned at the end of
	// the container's content.
	Exit func(fx Effects)

	// ResolveTo runs on all events right after the construct matched.
	ResolveTo Resolver

	// ResolveAll runs once over the whole paragraph when any instance of
	// the construct matched.
	ResolveAll Resolver
}

// Extension adds constructs keyed by the code they start with. Document
// constructs are containers; text constructs run inside paragraphs.
type Extension struct {
	Document map[Code][]*Construct
	Text     map[Code][]*Construct
}
