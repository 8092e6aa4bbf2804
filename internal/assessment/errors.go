package assessment

import "errors"

// Sentinel errors for the assessment package. ErrFlowFinished signals a caller bug
// (answering a word whose assessment already ended), not a data problem.
var (
	ErrFlowFinished    = errors.New("assessment: flow already finished")
	ErrFlowNotFinished = errors.New("assessment: flow not finished")
	ErrFlowMismatch    = errors.New("assessment: state does not match the selected flow")
	ErrInvalidState    = errors.New("assessment: invalid state")
	ErrUnknownWord     = errors.New("assessment: word not in batch")
)
