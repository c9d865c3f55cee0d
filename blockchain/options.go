package blockchain

// CallOption is a functional option for smart contract calls
type CallOption interface {
	applyToTrigger(*triggerRequest)
}

type callOption struct {
	apply func(*triggerRequest)
}

func (o callOption) applyToTrigger(req *triggerRequest) {
	if o.apply != nil {
		o.apply(req)
	}
}

// WithFeeLimit caps the energy fee the caller is willing to burn, in sun
func WithFeeLimit(sun int64) CallOption {
	return callOption{
		apply: func(req *triggerRequest) {
			req.FeeLimit = sun
		},
	}
}

// WithCallValue attaches TRX (in sun) to a payable call
func WithCallValue(sun int64) CallOption {
	return callOption{
		apply: func(req *triggerRequest) {
			req.CallValue = sun
		},
	}
}
