package surface

const (
	NumEncoders = 8
	EncoderStep = 9
	EncoderMax  = 127

	// relative encoder messages
	encoderDecrement = 1
	encoderIncrement = 65
)

// Encoders holds the accumulated value of each rotary encoder
type Encoders [NumEncoders]int

// Apply feeds one relative encoder message to encoder index. It returns
// the new value and whether the input was accepted; values other than the
// increment/decrement codes are ignored. Results are clamped to 0-127.
func (e *Encoders) Apply(index int, input uint8) (int, bool) {
	if index < 0 || index >= NumEncoders {
		return 0, false
	}

	v := e[index]
	switch input {
	case encoderDecrement:
		v -= EncoderStep
	case encoderIncrement:
		v += EncoderStep
	default:
		return v, false
	}

	e[index] = max(0, min(v, EncoderMax))
	return e[index], true
}
