package sendform

// Mode is the sealed send-mode variant. A send is either single-recipient,
// optionally with an encrypted message, or multi-recipient, which never
// carries message encryption. The illegal encrypted+multi combination is
// unrepresentable.
type Mode interface {
	isMode()
}

// Single is a one-recipient send.
type Single struct {
	Encrypted bool
}

// Multi is a one-to-many batch send.
type Multi struct{}

func (Single) isMode() {}
func (Multi) isMode()  {}
