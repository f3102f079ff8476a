package factory

// State is the progress of a single script. It is owned by one driver loop
// and is not safe for concurrent use.
type State struct {
	step         Step
	blockNo      uint32
	startNumber  uint32
	round        uint32
	blockInRound uint32
	count        uint32
	index        uint32
}

// NewState returns a state that starts the script from step and
// produces count extrinsics.
func NewState(step Step, count uint32) *State {
	return &State{step: step, count: count}
}

// Step returns the step of the next extrinsic.
func (s *State) Step() Step { return s.step }

// Advance stores the step reported by the builder.
func (s *State) Advance(next Step) { s.step = next }

// Count returns the number of extrinsics the script produces.
func (s *State) Count() uint32 { return s.count }

// Done returns true once Count extrinsics were produced.
func (s *State) Done() bool { return s.index >= s.count }

// StartNumber returns the block number the script started at.
func (s *State) StartNumber() uint32 { return s.startNumber }

// SetStartNumber sets the block number the script starts at.
func (s *State) SetStartNumber(val uint32) { s.startNumber = val }

// BlockNo returns the current block number.
func (s *State) BlockNo() uint32 { return s.blockNo }

// SetBlockNo sets the current block number.
func (s *State) SetBlockNo(val uint32) { s.blockNo = val }

// Round returns the current round.
func (s *State) Round() uint32 { return s.round }

// SetRound sets the current round.
func (s *State) SetRound(val uint32) { s.round = val }

// BlockInRound returns the number of the block within the round.
func (s *State) BlockInRound() uint32 { return s.blockInRound }

// SetBlockInRound sets the number of the block within the round.
func (s *State) SetBlockInRound(val uint32) { s.blockInRound = val }

// Index returns the nonce of the next extrinsic.
func (s *State) Index() uint32 { return s.index }

// IncreaseIndex increments the nonce. It is called once per produced extrinsic.
func (s *State) IncreaseIndex() { s.index++ }
